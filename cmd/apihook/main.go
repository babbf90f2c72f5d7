// Copyright 2026 The apihook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command apihook makes one HTTP request through a request hook and
// prints the final hook state as JSON.
//
//	apihook get https://api.example.com/items/1
//	apihook post /users --body '{"name":"John"}' -H 'X-Tenant: acme'
//
// Configuration is read from APIHOOK_* environment variables, see
// package internal/config.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/gogama/apihook"
	"github.com/gogama/apihook/internal/config"
	"github.com/gogama/apihook/internal/logger"
	"github.com/gogama/apihook/transport/restydoer"
	"github.com/gogama/apihook/zaplog"
	"go.uber.org/zap"
)

type cli struct {
	Method  string   `arg:"" enum:"get,delete,post,put,patch" help:"HTTP verb: get, delete, post, put or patch."`
	URL     string   `arg:"" help:"Request URL, absolute or relative to APIHOOK_BASE_URL."`
	Body    string   `short:"d" help:"Request body for post, put and patch."`
	Header  []string `short:"H" sep:"none" help:"Request header as 'Name: value'. Repeatable."`
	EnvFile string   `name:"env" default:".env" help:"Dotenv file to load configuration from."`
}

func main() {
	var c cli
	cliCtx := kong.Parse(&c,
		kong.Name("apihook"),
		kong.Description("Make one request through a request hook and print its state."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(c.EnvFile)
	cliCtx.FatalIfErrorf(err)
	log, err := logger.New(cfg.LogLevel)
	cliCtx.FatalIfErrorf(err)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	code, err := run(ctx, &c, cfg, log, os.Stdout)
	if err != nil {
		log.Error("apihook failed", zap.Error(err))
	}
	os.Exit(code)
}

type rawHook = apihook.Hook[json.RawMessage, json.RawMessage]

// run makes the request described by c and writes the final state to
// w. It returns exit code 0 if the request succeeded and 1 otherwise.
func run(ctx context.Context, c *cli, cfg *config.Config, log *zap.Logger, w io.Writer) (int, error) {
	init, err := parseInit(c.Header)
	if err != nil {
		return 2, err
	}
	if c.Body != "" && json.Valid([]byte(c.Body)) && init.Header.Get("Content-Type") == "" {
		init.Header.Set("Content-Type", "application/json")
	}

	handlers := &apihook.HandlerGroup{}
	zaplog.Install(handlers, log)
	doer := restydoer.New(cfg.Timeout, cfg.UserAgent)
	defer doer.CloseIdleConnections()
	opts := []apihook.Option{
		apihook.WithDoer(doer),
		apihook.WithHandlers(handlers),
	}
	if cfg.Base != nil {
		opts = append(opts, apihook.WithBaseURL(cfg.Base))
	}

	h, err := trigger(c, init, opts)
	if err != nil {
		return 2, err
	}
	defer h.Close()

	s, err := h.Wait(ctx)
	if err != nil {
		h.Cancel()
		s = h.State()
		log.Warn("request interrupted", zap.Error(err))
	}
	if err = writeState(w, s); err != nil {
		return 2, err
	}
	if s.Status() != apihook.Success {
		return 1, nil
	}
	return 0, nil
}

func trigger(c *cli, init *apihook.Init, opts []apihook.Option) (*rawHook, error) {
	req := apihook.Request{URL: c.URL, Init: init}
	breq := apihook.BodyRequest[string]{URL: c.URL, Init: init, Body: c.Body}
	switch c.Method {
	case "get":
		h := apihook.NewGet[json.RawMessage, json.RawMessage](opts...)
		return h.Hook, h.Fetch(req)
	case "delete":
		h := apihook.NewDelete[json.RawMessage, json.RawMessage](opts...)
		return h.Hook, h.Fetch(req)
	case "post":
		h := apihook.NewPost[string, json.RawMessage, json.RawMessage](opts...)
		return h.Hook, h.Fetch(breq)
	case "put":
		h := apihook.NewPut[string, json.RawMessage, json.RawMessage](opts...)
		return h.Hook, h.Fetch(breq)
	case "patch":
		h := apihook.NewPatch[string, json.RawMessage, json.RawMessage](opts...)
		return h.Hook, h.Fetch(breq)
	default:
		return nil, fmt.Errorf("unsupported method %q", c.Method)
	}
}

func parseInit(headers []string) (*apihook.Init, error) {
	init := &apihook.Init{Header: make(http.Header)}
	for _, h := range headers {
		k, v, ok := strings.Cut(h, ":")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid header %q (want 'Name: value')", h)
		}
		init.Header.Add(k, strings.TrimSpace(v))
	}
	return init, nil
}

type output struct {
	Status     apihook.Status `json:"status"`
	HTTPStatus int            `json:"httpStatus,omitempty"`
	Response   interface{}    `json:"response,omitempty"`
	Error      interface{}    `json:"error,omitempty"`
}

// writeState writes s as indented JSON. Bodies that are not valid JSON
// are written as strings.
func writeState(w io.Writer, s apihook.State[json.RawMessage, json.RawMessage]) error {
	o := output{
		Status:     s.Status(),
		HTTPStatus: s.HTTPStatus(),
	}
	if r, ok := s.Response(); ok && len(r) > 0 {
		o.Response = jsonOrString(r)
	}
	if f := s.Failure(); f != nil {
		if f.Body != nil && len(*f.Body) > 0 {
			o.Error = jsonOrString(*f.Body)
		} else {
			o.Error = f.Error()
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(o)
}

func jsonOrString(b []byte) interface{} {
	if json.Valid(b) {
		return json.RawMessage(b)
	}
	return string(b)
}
