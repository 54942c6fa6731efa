/*
 * © 2026 Beacon Limited
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

package jsonrpc

import (
	"context"
	"testing"

	"github.com/creachadair/jrpc2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/beaconhq/beacon-go/internal/signal"
)

func TestWrapHandler_PassesResultThrough(t *testing.T) {
	hub := signal.NewMockHub()
	wrapped := WrapHandler(hub, func(ctx context.Context, req *jrpc2.Request) (any, error) {
		return "ok", nil
	})

	result, err := wrapped(context.Background(), nil)

	assert.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 0, hub.EmitCount())
}

func TestWrapHandler_ReportsHandlerError(t *testing.T) {
	hub := signal.NewMockHub()
	cause := errors.New("handler failed")
	wrapped := WrapHandler(hub, func(ctx context.Context, req *jrpc2.Request) (any, error) {
		return nil, cause
	})

	_, err := wrapped(context.Background(), nil)

	assert.Same(t, cause, err)
	events := hub.Events()
	assert.Len(t, events, 1)
	assert.Same(t, cause, events[0].Err)
}

func TestWrapHandler_ConvertsPanicIntoError(t *testing.T) {
	hub := signal.NewMockHub()
	wrapped := WrapHandler(hub, func(ctx context.Context, req *jrpc2.Request) (any, error) {
		panic("handler exploded")
	})

	var err error
	assert.NotPanics(t, func() {
		_, err = wrapped(context.Background(), nil)
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "handler exploded")
	assert.Equal(t, 1, hub.EmitCount())
}

func TestWrapMap_WrapsEveryHandler(t *testing.T) {
	hub := signal.NewMockHub()
	handlers := map[string]jrpc2.Handler{
		"a": func(ctx context.Context, req *jrpc2.Request) (any, error) { return nil, errors.New("a failed") },
		"b": func(ctx context.Context, req *jrpc2.Request) (any, error) { return "ok", nil },
	}

	wrapped := WrapMap(hub, handlers)

	_, errA := wrapped["a"](context.Background(), nil)
	resultB, errB := wrapped["b"](context.Background(), nil)

	assert.Error(t, errA)
	assert.NoError(t, errB)
	assert.Equal(t, "ok", resultB)
	assert.Equal(t, 1, hub.EmitCount())
}
