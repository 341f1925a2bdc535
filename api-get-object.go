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
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/minio/objstore/pkg/s3utils"
)

// GetObject wrapper function that accepts a request context on an
// object, returns a seekable and readable *Object.
func (c *Client) GetObject(ctx context.Context, bucketName, objectName string, opts GetObjectOptions) (*Object, error) {
	// Input validation.
	if err := s3utils.CheckValidBucketName(bucketName); err != nil {
		return nil, ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "InvalidBucketName",
			Message:    err.Error(),
		}
	}
	if err := s3utils.CheckValidObjectName(objectName); err != nil {
		return nil, ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "XMinioInvalidObjectName",
			Message:    err.Error(),
		}
	}
	if err := c.checkSSERequirements(opts.ServerSideEncryption); err != nil {
		return nil, err
	}

	return &Object{
		ctx:        ctx,
		client:     c,
		bucketName: bucketName,
		objectName: objectName,
		opts:       opts,
	}, nil
}

// getObject - retrieve object from Object Storage, optionally from
// the given byte offset and length.
//
// Internally this uses a ranged GET when offset or length are set.
func (c *Client) getObject(ctx context.Context, bucketName, objectName string, offset, length int64, opts GetObjectOptions) (io.ReadCloser, ObjectInfo, http.Header, error) {
	// Validate input arguments.
	if err := s3utils.CheckValidBucketName(bucketName); err != nil {
		return nil, ObjectInfo{}, nil, err
	}
	if err := s3utils.CheckValidObjectName(objectName); err != nil {
		return nil, ObjectInfo{}, nil, err
	}
	if err := c.checkSSERequirements(opts.ServerSideEncryption); err != nil {
		return nil, ObjectInfo{}, nil, err
	}

	// Copy the options so range changes stay local to this call.
	rangedOpts := opts
	rangedOpts.headers = make(map[string]string, len(opts.headers))
	for k, v := range opts.headers {
		rangedOpts.headers[k] = v
	}

	if offset > 0 || length > 0 {
		if length > 0 {
			if err := rangedOpts.SetRange(offset, offset+length-1); err != nil {
				return nil, ObjectInfo{}, nil, err
			}
		} else if err := rangedOpts.SetRange(offset, 0); err != nil {
			return nil, ObjectInfo{}, nil, err
		}
	}

	// Execute GET on objectName.
	resp, err := c.executeMethod(ctx, http.MethodGet, requestMetadata{
		bucketName:       bucketName,
		objectName:       objectName,
		queryValues:      rangedOpts.toQueryValues(),
		customHeader:     rangedOpts.Header(),
		contentSHA256Hex: emptySHA256Hex,
	})
	if err != nil {
		return nil, ObjectInfo{}, nil, err
	}
	if resp != nil {
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
			err := httpRespToErrorResponse(resp, bucketName, objectName)
			closeResponse(resp)
			return nil, ObjectInfo{}, nil, err
		}
	}

	objectStat, err := ToObjectInfo(bucketName, objectName, resp.Header)
	if err != nil {
		closeResponse(resp)
		return nil, ObjectInfo{}, nil, err
	}

	// For partial content the total object size comes from
	// Content-Range, Content-Length only carries the range size.
	if resp.StatusCode == http.StatusPartialContent {
		if contentRange := resp.Header.Get("Content-Range"); contentRange != "" {
			if idx := strings.LastIndex(contentRange, "/"); idx >= 0 {
				if total, cerr := strconv.ParseInt(contentRange[idx+1:], 10, 64); cerr == nil {
					objectStat.Size = total
				}
			}
		}
	}

	// do not close body here, caller will close
	return resp.Body, objectStat, resp.Header, nil
}

// Object represents an open object. It implements Reader, ReaderAt,
// Seeker, Closer for a HTTP stream.
type Object struct {
	ctx    context.Context
	client *Client

	bucketName string
	objectName string
	opts       GetObjectOptions

	// Mutex guards all fields below.
	mu sync.Mutex

	// Current active stream and the absolute offset it reads from.
	body       io.ReadCloser
	bodyOffset int64

	// Absolute read offset for the next Read.
	currOffset int64

	// Keeps track of closed call.
	isClosed bool

	// Cached object metadata, learned on the first request.
	objectInfo    ObjectInfo
	objectInfoSet bool

	// Previous error saved for future calls.
	prevErr error
}

// doGetRequest opens the stream at the given absolute offset.
func (o *Object) doGetRequest(offset int64) error {
	if o.body != nil {
		o.body.Close()
		o.body = nil
	}
	body, info, _, err := o.client.getObject(o.ctx, o.bucketName, o.objectName, offset, 0, o.opts)
	if err != nil {
		return err
	}
	if !o.objectInfoSet {
		o.objectInfo = info
		o.objectInfoSet = true
	}
	o.body = body
	o.bodyOffset = offset
	return nil
}

// statObject is an internal implementation of stat, learns the object
// size without opening a stream.
func (o *Object) statObject() error {
	info, err := o.client.StatObject(o.ctx, o.bucketName, o.objectName, o.opts)
	if err != nil {
		return err
	}
	o.objectInfo = info
	o.objectInfoSet = true
	return nil
}

// Read reads up to len(b) bytes into b. It returns the number of
// bytes read (0 <= n <= len(b)) and any error encountered. Returns
// io.EOF upon end of file.
func (o *Object) Read(b []byte) (n int, err error) {
	if o == nil {
		return 0, errInvalidArgument("Object is nil")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.isClosed {
		return 0, errors.New("Object is already closed")
	}
	if o.prevErr != nil {
		return 0, o.prevErr
	}

	// Open or reopen the stream when the current one does not line
	// up with the requested offset.
	if o.body == nil || o.bodyOffset != o.currOffset {
		if o.objectInfoSet && o.currOffset >= o.objectInfo.Size {
			return 0, io.EOF
		}
		if err := o.doGetRequest(o.currOffset); err != nil {
			o.prevErr = err
			return 0, err
		}
	}

	n, err = o.body.Read(b)
	o.bodyOffset += int64(n)
	o.currOffset += int64(n)
	if err != nil && err != io.EOF {
		o.prevErr = err
	}
	return n, err
}

// Stat returns the ObjectInfo structure describing Object.
func (o *Object) Stat() (ObjectInfo, error) {
	if o == nil {
		return ObjectInfo{}, errInvalidArgument("Object is nil")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.isClosed {
		return ObjectInfo{}, errors.New("Object is already closed")
	}
	if o.prevErr != nil && o.prevErr != io.EOF {
		return ObjectInfo{}, o.prevErr
	}

	if !o.objectInfoSet {
		if err := o.statObject(); err != nil {
			o.prevErr = err
			return ObjectInfo{}, err
		}
	}
	return o.objectInfo, nil
}

// ReadAt reads len(b) bytes from the File starting at byte offset
// off. It returns the number of bytes read and the error, if any.
// ReadAt always returns a non-nil error when n < len(b). At end of
// file, that error is io.EOF.
func (o *Object) ReadAt(b []byte, offset int64) (n int, err error) {
	if o == nil {
		return 0, errInvalidArgument("Object is nil")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.isClosed {
		return 0, errors.New("Object is already closed")
	}
	if o.prevErr != nil && o.prevErr != io.EOF {
		return 0, o.prevErr
	}
	if offset < 0 {
		return 0, errInvalidArgument(fmt.Sprintf("Negative offset %d", offset))
	}

	// ReadAt issues its own ranged request, the sequential stream is
	// left untouched.
	body, info, _, err := o.client.getObject(o.ctx, o.bucketName, o.objectName, offset, int64(len(b)), o.opts)
	if err != nil {
		return 0, err
	}
	defer body.Close()
	if !o.objectInfoSet {
		o.objectInfo = info
		o.objectInfoSet = true
	}

	n, err = readFull(body, b)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return n, err
}

// Seek sets the offset for the next Read to offset, interpreted
// according to whence: 0 means relative to the origin of the file, 1
// means relative to the current offset, and 2 means relative to the
// end.
//
// Seek returns the new offset and an error, if any.
func (o *Object) Seek(offset int64, whence int) (int64, error) {
	if o == nil {
		return 0, errInvalidArgument("Object is nil")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.isClosed {
		return 0, errors.New("Object is already closed")
	}
	// Seeking past a read error is allowed, io.EOF in particular.
	if o.prevErr != nil && o.prevErr != io.EOF {
		return 0, o.prevErr
	}
	o.prevErr = nil

	switch whence {
	case io.SeekStart:
		if offset < 0 {
			return 0, errInvalidArgument(fmt.Sprintf("Negative position not allowed for %d", whence))
		}
		o.currOffset = offset
	case io.SeekCurrent:
		if o.currOffset+offset < 0 {
			return 0, errInvalidArgument(fmt.Sprintf("Seeking at negative offset not allowed for %d", whence))
		}
		o.currOffset += offset
	case io.SeekEnd:
		// Seeking relative to the end requires the size.
		if !o.objectInfoSet {
			if err := o.statObject(); err != nil {
				o.prevErr = err
				return 0, err
			}
		}
		if o.objectInfo.Size+offset < 0 {
			return 0, errInvalidArgument(fmt.Sprintf("Seeking at negative offset not allowed for %d", whence))
		}
		o.currOffset = o.objectInfo.Size + offset
	default:
		return 0, errInvalidArgument(fmt.Sprintf("Invalid whence %d", whence))
	}
	return o.currOffset, nil
}

// Close - The behavior of Close after the first call returns error
// for subsequent Close() calls.
func (o *Object) Close() (err error) {
	if o == nil {
		return errInvalidArgument("Object is nil")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.isClosed {
		return errors.New("Object is already closed")
	}

	if o.body != nil {
		err = o.body.Close()
		o.body = nil
	}
	o.isClosed = true
	return err
}
