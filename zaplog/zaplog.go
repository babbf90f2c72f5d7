// Copyright 2026 The apihook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package zaplog logs hook request attempts to a zap logger.
//
// Hooks themselves never log. To log their requests, install a zaplog
// handler into the HandlerGroup given to the hook:
//
//	handlers := &apihook.HandlerGroup{}
//	zaplog.Install(handlers, logger)
//	h := apihook.NewGet[Item, APIError](apihook.WithHandlers(handlers))
package zaplog

import (
	"github.com/gogama/apihook"
	"github.com/gogama/apihook/request"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Handler returns an apihook.Handler that logs attempts to log.
//
// BeforeAttempt is logged at debug level. AfterSettle is logged at
// info level if the attempt succeeded and its body decoded, and at
// warn level otherwise.
// AfterDiscard is logged at debug level. Other events are ignored.
func Handler(log *zap.Logger) apihook.Handler {
	if log == nil {
		panic("apihook/zaplog: nil logger")
	}
	return apihook.HandlerFunc(func(evt apihook.Event, a *request.Attempt) {
		switch evt {
		case apihook.BeforeAttempt:
			log.Debug("request started", requestFields(a)...)
		case apihook.AfterSettle:
			level := zapcore.InfoLevel
			if !a.Success() || a.DecodeErr != nil {
				level = zapcore.WarnLevel
			}
			if ce := log.Check(level, "request settled"); ce != nil {
				ce.Write(outcomeFields(a)...)
			}
		case apihook.AfterDiscard:
			log.Debug("request discarded", outcomeFields(a)...)
		}
	})
}

// Install adds a Handler for log to g for every event it logs.
func Install(g *apihook.HandlerGroup, log *zap.Logger) {
	h := Handler(log)
	g.PushBack(apihook.BeforeAttempt, h)
	g.PushBack(apihook.AfterSettle, h)
	g.PushBack(apihook.AfterDiscard, h)
}

func requestFields(a *request.Attempt) []zap.Field {
	return []zap.Field{
		zap.Stringer("attempt", a.ID),
		zap.String("method", a.Plan.Method),
		zap.Stringer("url", a.Plan.URL),
	}
}

func outcomeFields(a *request.Attempt) []zap.Field {
	fields := requestFields(a)
	if status := a.StatusCode(); status != 0 {
		fields = append(fields, zap.Int("status", status))
	}
	fields = append(fields, zap.Duration("duration", a.Duration()))
	if a.Err != nil {
		fields = append(fields,
			zap.Error(a.Err),
			zap.Stringer("category", a.Category()),
		)
	}
	if a.DecodeErr != nil {
		fields = append(fields, zap.NamedError("decode_error", a.DecodeErr))
	}
	return fields
}
