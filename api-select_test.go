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

package objstore

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"io"
	"net/http"
	"strings"
	"testing"
	"testing/iotest"
)

// eventStreamHeader is a single binary event stream header.
type eventStreamHeader struct {
	name  string
	value string
}

// encodeEventStreamMessage builds one binary event stream message the
// way S3 frames Select responses: a 12 byte prelude with its own CRC,
// headers, payload and a trailing CRC over the whole message.
func encodeEventStreamMessage(headers []eventStreamHeader, payload []byte) []byte {
	var headerBuf bytes.Buffer
	for _, h := range headers {
		headerBuf.WriteByte(byte(len(h.name)))
		headerBuf.WriteString(h.name)
		headerBuf.WriteByte(7) // header value type, string
		var valueLen [2]byte
		binary.BigEndian.PutUint16(valueLen[:], uint16(len(h.value)))
		headerBuf.Write(valueLen[:])
		headerBuf.WriteString(h.value)
	}

	headerLen := headerBuf.Len()
	totalLen := headerLen + len(payload) + 16

	var msg bytes.Buffer
	var u32 [4]byte
	binary.BigEndian.PutUint32(u32[:], uint32(totalLen))
	msg.Write(u32[:])
	binary.BigEndian.PutUint32(u32[:], uint32(headerLen))
	msg.Write(u32[:])
	binary.BigEndian.PutUint32(u32[:], crc32.ChecksumIEEE(msg.Bytes()))
	msg.Write(u32[:])
	msg.Write(headerBuf.Bytes())
	msg.Write(payload)
	binary.BigEndian.PutUint32(u32[:], crc32.ChecksumIEEE(msg.Bytes()))
	msg.Write(u32[:])
	return msg.Bytes()
}

func recordsMessage(payload []byte) []byte {
	return encodeEventStreamMessage([]eventStreamHeader{
		{":message-type", "event"},
		{":event-type", "Records"},
		{":content-type", "application/octet-stream"},
	}, payload)
}

func statsMessage(body string) []byte {
	return encodeEventStreamMessage([]eventStreamHeader{
		{":message-type", "event"},
		{":event-type", "Stats"},
		{":content-type", "text/xml"},
	}, []byte(body))
}

func endMessage() []byte {
	return encodeEventStreamMessage([]eventStreamHeader{
		{":message-type", "event"},
		{":event-type", "End"},
	}, nil)
}

func newSelectResponse(stream []byte) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader(stream)),
		Header:     http.Header{},
	}
}

// Tests decoding of a records event followed by the end event.
func TestSelectResultsRecords(t *testing.T) {
	var stream bytes.Buffer
	stream.Write(recordsMessage([]byte("2012,GB,1\n")))
	stream.Write(recordsMessage([]byte("2012,US,5\n")))
	stream.Write(endMessage())

	sr, err := NewSelectResults(newSelectResponse(stream.Bytes()), "mybucket")
	if err != nil {
		t.Fatal(err)
	}
	defer sr.Close()

	records, err := io.ReadAll(sr)
	if err != nil {
		t.Fatalf("unexpected read error %v", err)
	}
	expected := "2012,GB,1\n2012,US,5\n"
	if string(records) != expected {
		t.Errorf("expected records %q, got %q", expected, records)
	}
}

// Tests the decoder tolerates short reads from the transport.
func TestSelectResultsShortReads(t *testing.T) {
	var stream bytes.Buffer
	stream.Write(recordsMessage([]byte("2012,GB,1\n")))
	stream.Write(endMessage())

	resp := &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(iotest.OneByteReader(bytes.NewReader(stream.Bytes()))),
		Header:     http.Header{},
	}
	sr, err := NewSelectResults(resp, "mybucket")
	if err != nil {
		t.Fatal(err)
	}
	defer sr.Close()

	records, err := io.ReadAll(sr)
	if err != nil {
		t.Fatalf("unexpected read error %v", err)
	}
	if string(records) != "2012,GB,1\n" {
		t.Errorf("expected records %q, got %q", "2012,GB,1\n", records)
	}
}

// Tests decoding of the stats event XML payload.
func TestSelectResultsStats(t *testing.T) {
	statsXML := `<Stats><BytesScanned>512</BytesScanned><BytesProcessed>512</BytesProcessed><BytesReturned>128</BytesReturned></Stats>`
	var stream bytes.Buffer
	stream.Write(recordsMessage([]byte("a,b,c\n")))
	stream.Write(statsMessage(statsXML))
	stream.Write(endMessage())

	sr, err := NewSelectResults(newSelectResponse(stream.Bytes()), "mybucket")
	if err != nil {
		t.Fatal(err)
	}
	defer sr.Close()

	if _, err = io.ReadAll(sr); err != nil {
		t.Fatalf("unexpected read error %v", err)
	}
	stats := sr.Stats()
	if stats.BytesScanned != 512 || stats.BytesProcessed != 512 || stats.BytesReturned != 128 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

// Tests that server error messages terminate the stream with an error.
func TestSelectResultsErrorMessage(t *testing.T) {
	errMsg := encodeEventStreamMessage([]eventStreamHeader{
		{":message-type", "error"},
		{":error-code", "InvalidTextEncoding"},
		{":error-message", "UTF-8 encoding is required"},
	}, nil)

	sr, err := NewSelectResults(newSelectResponse(errMsg), "mybucket")
	if err != nil {
		t.Fatal(err)
	}
	defer sr.Close()

	_, err = io.ReadAll(sr)
	if err == nil {
		t.Fatal("expected error from error message")
	}
	if !strings.Contains(err.Error(), "InvalidTextEncoding") {
		t.Errorf("expected error code in %v", err)
	}
}

// Tests that a corrupted message CRC is detected.
func TestSelectResultsCRCMismatch(t *testing.T) {
	msg := recordsMessage([]byte("a,b,c\n"))
	// Flip a bit in the trailing message CRC.
	msg[len(msg)-1] ^= 0xff

	sr, err := NewSelectResults(newSelectResponse(msg), "mybucket")
	if err != nil {
		t.Fatal(err)
	}
	defer sr.Close()

	_, err = io.ReadAll(sr)
	if err == nil {
		t.Fatal("expected checksum mismatch error")
	}
	if !strings.Contains(err.Error(), "Checksum Mismatch") {
		t.Errorf("expected checksum mismatch, got %v", err)
	}
}

// Tests that a non-200 response is turned into an ErrorResponse.
func TestNewSelectResultsError(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`
	resp := &http.Response{
		StatusCode: http.StatusNotFound,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
	_, err := NewSelectResults(resp, "mybucket")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if ToErrorResponse(err).Code != "NoSuchKey" {
		t.Errorf("expected NoSuchKey, got %q", ToErrorResponse(err).Code)
	}
}
