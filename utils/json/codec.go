// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package json

import (
	"net/http"

	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
)

// NewCodec returns a json codec that converts the internal error types
// to strings.
func NewCodec() rpc.Codec {
	return codec{Codec: json2.NewCodec()}
}

type codec struct {
	*json2.Codec
}

func (c codec) NewRequest(r *http.Request) rpc.CodecRequest {
	return codecRequest{CodecRequest: c.Codec.NewRequest(r)}
}

type codecRequest struct {
	rpc.CodecRequest
}

// WriteError writes an error in the response
func (r codecRequest) WriteError(w http.ResponseWriter, status int, err error) {
	r.CodecRequest.WriteError(w, status, &json2.Error{
		Code:    json2.E_INTERNAL,
		Message: err.Error(),
	})
}
