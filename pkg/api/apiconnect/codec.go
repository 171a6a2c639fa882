// Package apiconnect wires the pantry.v1 services to Connect handlers and
// clients. Messages are plain Go structs, so every handler and client is
// built with a JSON codec in place of the protobuf ones.
package apiconnect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"connectrpc.com/connect"
)

// Codec marshals messages with encoding/json under the Connect "json"
// codec name, so requests use Content-Type application/json.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
}

// serviceMux routes the procedures of one service and 404s the rest.
func serviceMux(handlers ...*procedureHandler) http.Handler {
	routes := make(map[string]http.Handler, len(handlers))
	for _, h := range handlers {
		routes[h.procedure] = h.handler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

type procedureHandler struct {
	procedure string
	handler   http.Handler
}

func unary[Req, Res any](procedure string, fn func(ctx context.Context, req *connect.Request[Req]) (*connect.Response[Res], error), opts []connect.HandlerOption) *procedureHandler {
	return &procedureHandler{
		procedure: procedure,
		handler:   connect.NewUnaryHandler(procedure, fn, opts...),
	}
}
