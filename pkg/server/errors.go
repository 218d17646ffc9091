// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	tmerrors "github.com/tempmon/tempmon/pkg/errors"
	"github.com/tempmon/tempmon/pkg/serializer"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// HTTPStatusFromCode maps an error code to an HTTP status.
func HTTPStatusFromCode(code tmerrors.ErrorCode) int {
	switch code {
	case tmerrors.ErrCodeValidation:
		return http.StatusBadRequest
	case tmerrors.ErrCodeNotFound:
		return http.StatusNotFound
	case tmerrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case tmerrors.ErrCodeInvalidState:
		return http.StatusConflict
	case tmerrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case tmerrors.ErrCodeUnavailable, tmerrors.ErrCodeConnect:
		return http.StatusServiceUnavailable
	case tmerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case tmerrors.ErrCodeRender:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code tmerrors.ErrorCode) bool {
	switch code {
	case tmerrors.ErrCodeTimeout,
		tmerrors.ErrCodeUnavailable,
		tmerrors.ErrCodeRateLimitExceeded,
		tmerrors.ErrCodeConnect,
		tmerrors.ErrCodeInternal,
		tmerrors.ErrCodeIO:
		return true
	default:
		return false
	}
}

// mergeDetails returns a new map with b's entries overriding a's, or nil
// when both are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// WriteError writes an ErrorResponse with the request's ID.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code tmerrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr writes err, deriving status and code from a
// StructuredError when present. Other errors become INTERNAL with fallback
// as the message.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallback string, details map[string]any) {
	var se *tmerrors.StructuredError
	if errors.As(err, &se) {
		d := mergeDetails(se.Context, details)
		if se.Cause != nil {
			d = mergeDetails(d, map[string]any{"error": se.Cause.Error()})
		}
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message, retryableFromCode(se.Code), d)
		return
	}

	d := details
	if err != nil {
		d = mergeDetails(details, map[string]any{"error": err.Error()})
	}
	WriteError(w, r, http.StatusInternalServerError, tmerrors.ErrCodeInternal, fallback, true, d)
}
