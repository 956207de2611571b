// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"", log.ErrorLevel},
		{"trace", log.DebugLevel},
		{"DEBUG", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"bogus", log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{W: &buf}
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name  string
		entry *log.Entry
		want  string
	}{
		{
			name:  "debug",
			entry: &log.Entry{Level: log.DebugLevel, Message: "hello", Timestamp: ts},
			want:  "2026-01-02 03:04:05 D hello\n",
		},
		{
			name:  "trace prefix",
			entry: &log.Entry{Level: log.DebugLevel, Message: "TRACE: deep", Timestamp: ts},
			want:  "2026-01-02 03:04:05 T deep\n",
		},
		{
			name:  "warn with fields",
			entry: &log.Entry{Level: log.WarnLevel, Message: "dup", Timestamp: ts, Fields: log.Fields{"key": "a"}},
			want:  "2026-01-02 03:04:05 W dup key=a\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			require.NoError(t, h.HandleLog(tt.entry))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestInitLogger(t *testing.T) {
	t.Setenv("KEYDIFF_LOG", "trace")
	InitLogger()
	assert.True(t, traceEnabled)

	var buf bytes.Buffer
	log.SetHandler(&Handler{W: &buf})
	Tracef("x=%d", 1)
	WithError(errors.New("bad")).Error("failed")
	assert.True(t, strings.Contains(buf.String(), " T x=1"))
	assert.Contains(t, buf.String(), "E failed error=bad")
	WithFields(map[string]interface{}{"size": 2, "object": "s3://b/k"}).Debug("fetched")
	assert.Contains(t, buf.String(), "D fetched object=s3://b/k size=2")

	t.Setenv("KEYDIFF_LOG", "")
	InitLogger()
	assert.False(t, traceEnabled)
}
