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

package set

import (
	"encoding/json"
	"strings"
	"testing"

	. "gopkg.in/check.v1"
)

func Test(t *testing.T) { TestingT(t) }

type MySuite struct{}

var _ = Suite(&MySuite{})

// Tests basic set operations.
func (s *MySuite) TestStringSetBasics(c *C) {
	set := NewStringSet()
	c.Assert(set.IsEmpty(), Equals, true)

	set.Add("foo")
	set.Add("foo")
	set.Add("bar")
	c.Assert(set.IsEmpty(), Equals, false)
	c.Assert(set.Contains("foo"), Equals, true)
	c.Assert(set.Contains("baz"), Equals, false)
	c.Assert(len(set.ToSlice()), Equals, 2)

	set.Remove("foo")
	c.Assert(set.Contains("foo"), Equals, false)
	set.Remove("foo") // removing a missing element is a no-op
}

// Tests set creation helpers.
func (s *MySuite) TestCreateStringSet(c *C) {
	set := CreateStringSet("foo", "bar", "baz")
	c.Assert(len(set.ToSlice()), Equals, 3)

	// ToSlice returns sorted elements.
	c.Assert(set.ToSlice(), DeepEquals, []string{"bar", "baz", "foo"})

	copied := CopyStringSet(set)
	c.Assert(copied.Equals(set), Equals, true)
	copied.Add("qux")
	c.Assert(set.Contains("qux"), Equals, false)
}

// Tests set algebra.
func (s *MySuite) TestStringSetAlgebra(c *C) {
	a := CreateStringSet("foo", "bar", "baz")
	b := CreateStringSet("bar", "qux")

	c.Assert(a.Intersection(b).Equals(CreateStringSet("bar")), Equals, true)
	c.Assert(a.Difference(b).Equals(CreateStringSet("foo", "baz")), Equals, true)
	c.Assert(a.Union(b).Equals(CreateStringSet("foo", "bar", "baz", "qux")), Equals, true)
	c.Assert(a.Equals(b), Equals, false)
}

// Tests functional helpers.
func (s *MySuite) TestStringSetFunc(c *C) {
	set := CreateStringSet("foo.csv", "bar.csv", "baz.txt")

	matched := set.FuncMatch(func(value, match string) bool {
		return strings.HasSuffix(value, match)
	}, ".csv")
	c.Assert(matched.Equals(CreateStringSet("foo.csv", "bar.csv")), Equals, true)

	upper := set.ApplyFunc(strings.ToUpper)
	c.Assert(upper.Contains("FOO.CSV"), Equals, true)
}

// Tests JSON round trip of string sets.
func (s *MySuite) TestStringSetJSON(c *C) {
	set := CreateStringSet("foo", "bar")
	data, err := json.Marshal(set)
	c.Assert(err, IsNil)

	var decoded StringSet
	err = json.Unmarshal(data, &decoded)
	c.Assert(err, IsNil)
	c.Assert(decoded.Equals(set), Equals, true)

	// A single string decodes to a one element set.
	err = json.Unmarshal([]byte(`"solo"`), &decoded)
	c.Assert(err, IsNil)
	c.Assert(decoded.Equals(CreateStringSet("solo")), Equals, true)
}
