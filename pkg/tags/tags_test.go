/*
 * MinIO Go Library for Amazon S3 Compatible Cloud Storage
 * Copyright 2015-2025 MinIO, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package tags

import (
	"encoding/xml"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// Tests creating tags from a map with validation.
func TestNewTags(t *testing.T) {
	tagMap := map[string]string{
		"project": "objstore",
		"owner":   "team a",
	}
	tags, err := MapToObjectTags(tagMap)
	if err != nil {
		t.Fatal(err)
	}
	if tags.Count() != 2 {
		t.Errorf("expected 2 tags, got %d", tags.Count())
	}
	if !reflect.DeepEqual(tags.ToMap(), tagMap) {
		t.Errorf("expected %v, got %v", tagMap, tags.ToMap())
	}

	// Keys are sorted in the canonical string form.
	if tags.String() != "owner=team+a&project=objstore" {
		t.Errorf("unexpected canonical form %q", tags.String())
	}
}

// Tests tag key and value validation rules.
func TestTagValidation(t *testing.T) {
	if _, err := MapToObjectTags(map[string]string{"": "value"}); err == nil {
		t.Error("expected error for empty key")
	}
	if _, err := MapToObjectTags(map[string]string{strings.Repeat("k", 129): "value"}); err == nil {
		t.Error("expected error for key longer than 128 characters")
	}
	if _, err := MapToObjectTags(map[string]string{"key": strings.Repeat("v", 257)}); err == nil {
		t.Error("expected error for value longer than 256 characters")
	}
	if _, err := MapToObjectTags(map[string]string{"inv&lid": "value"}); err == nil {
		t.Error("expected error for invalid key character")
	}
	if _, err := MapToObjectTags(map[string]string{"key": "inv&lid"}); err == nil {
		t.Error("expected error for invalid value character")
	}
	// Empty values are allowed.
	if _, err := MapToObjectTags(map[string]string{"key": ""}); err != nil {
		t.Errorf("empty value should be allowed: %v", err)
	}
}

// Tests the per-resource tag count limits.
func TestTagCountLimits(t *testing.T) {
	objectTags := make(map[string]string)
	for i := 0; i < 11; i++ {
		objectTags[fmt.Sprintf("key%d", i)] = "value"
	}
	if _, err := MapToObjectTags(objectTags); err == nil {
		t.Error("expected error for more than 10 object tags")
	}
	if _, err := MapToBucketTags(objectTags); err != nil {
		t.Errorf("11 tags must be allowed on a bucket: %v", err)
	}

	bucketTags := make(map[string]string)
	for i := 0; i < 51; i++ {
		bucketTags[fmt.Sprintf("key%d", i)] = "value"
	}
	if _, err := MapToBucketTags(bucketTags); err == nil {
		t.Error("expected error for more than 50 bucket tags")
	}
}

// Tests the XML codec round trips and is deterministic.
func TestTagsXML(t *testing.T) {
	tags, err := MapToObjectTags(map[string]string{
		"project": "objstore",
		"owner":   "team a",
	})
	if err != nil {
		t.Fatal(err)
	}

	data, err := xml.Marshal(tags)
	if err != nil {
		t.Fatal(err)
	}
	expected := `<Tagging><TagSet><Tag><Key>owner</Key><Value>team a</Value></Tag><Tag><Key>project</Key><Value>objstore</Value></Tag></TagSet></Tagging>`
	if string(data) != expected {
		t.Errorf("expected %s, got %s", expected, data)
	}

	decoded, err := ParseObjectXML(strings.NewReader(expected))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(decoded.ToMap(), tags.ToMap()) {
		t.Errorf("round trip mismatch: %v != %v", decoded.ToMap(), tags.ToMap())
	}
}

// Tests that duplicate keys in an XML document are rejected.
func TestTagsXMLDuplicateKey(t *testing.T) {
	doc := `<Tagging><TagSet><Tag><Key>key</Key><Value>a</Value></Tag><Tag><Key>key</Key><Value>b</Value></Tag></TagSet></Tagging>`
	if _, err := ParseObjectXML(strings.NewReader(doc)); err == nil {
		t.Error("expected duplicate key error")
	}
}

// Tests parsing of url encoded tag strings.
func TestParseObjectTags(t *testing.T) {
	tags, err := ParseObjectTags("owner=team+a&project=objstore")
	if err != nil {
		t.Fatal(err)
	}
	expected := map[string]string{
		"owner":   "team a",
		"project": "objstore",
	}
	if !reflect.DeepEqual(tags.ToMap(), expected) {
		t.Errorf("expected %v, got %v", expected, tags.ToMap())
	}

	if _, err = ParseObjectTags("key=a&key=b"); err == nil {
		t.Error("expected duplicate key error")
	}

	tags, err = ParseObjectTags("")
	if err != nil {
		t.Fatal(err)
	}
	if tags.Count() != 0 {
		t.Errorf("expected no tags, got %d", tags.Count())
	}
}

// Tests Set and Remove on an existing tag set.
func TestTagsSetRemove(t *testing.T) {
	tags, err := MapToObjectTags(map[string]string{"project": "objstore"})
	if err != nil {
		t.Fatal(err)
	}

	if err = tags.Set("owner", "team a"); err != nil {
		t.Fatal(err)
	}
	if tags.Count() != 2 {
		t.Errorf("expected 2 tags, got %d", tags.Count())
	}

	// Set overwrites an existing key.
	if err = tags.Set("project", "archive"); err != nil {
		t.Fatal(err)
	}
	if tags.ToMap()["project"] != "archive" {
		t.Errorf("expected overwritten value, got %q", tags.ToMap()["project"])
	}

	tags.Remove("owner")
	if tags.Count() != 1 {
		t.Errorf("expected 1 tag after remove, got %d", tags.Count())
	}
}
