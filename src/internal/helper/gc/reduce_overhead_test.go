// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferInterface(t *testing.T) {
	tests := []struct {
		name  string
		setup func(buf Buffer)
		want  string
	}{
		{
			name:  "Write byte slice",
			setup: func(buf Buffer) { buf.Write([]byte("hello")) },
			want:  "hello",
		},
		{
			name:  "WriteString",
			setup: func(buf Buffer) { buf.WriteString("test string") },
			want:  "test string",
		},
		{
			name:  "WriteByte",
			setup: func(buf Buffer) { buf.WriteByte('A') },
			want:  "A",
		},
		{
			name: "Multiple operations",
			setup: func(buf Buffer) {
				buf.Write([]byte("hello"))
				buf.WriteString(" test")
				buf.WriteByte('!')
			},
			want: "hello test!",
		},
		{
			name: "Reset clears buffer",
			setup: func(buf Buffer) {
				buf.WriteString("data to clear")
				buf.Reset()
			},
			want: "",
		},
		{
			name:  "Empty buffer",
			setup: func(buf Buffer) {},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := Default.Get()
			defer func() {
				buf.Reset()
				Default.Put(buf)
			}()

			tt.setup(buf)
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, len(tt.want), buf.Len())
			assert.Equal(t, tt.want, string(buf.Bytes()))
		})
	}
}

func TestBufferReadFromAndWriteTo(t *testing.T) {
	buf := Default.Get()
	defer func() {
		buf.Reset()
		Default.Put(buf)
	}()

	n, err := buf.ReadFrom(strings.NewReader("certificate data"))
	require.NoError(t, err)
	assert.Equal(t, int64(16), n)

	var out bytes.Buffer
	_, err = buf.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, "certificate data", out.String())
}

func TestPoolPutNonByteBuffer(t *testing.T) {
	mock := &mockBuffer{buf: new(bytes.Buffer)}
	assert.NotPanics(t, func() { Default.Put(mock) })
}

func TestReadAll(t *testing.T) {
	data, err := ReadAll(strings.NewReader("owned"))
	require.NoError(t, err)
	assert.Equal(t, "owned", string(data))

	// The returned slice must survive reuse of the pooled buffer.
	buf := Default.Get()
	buf.WriteString("XXXXX")
	Default.Put(buf)
	assert.Equal(t, "owned", string(data))

	boom := errors.New("boom")
	_, err = ReadAll(&errorReader{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestGoroutineCooking(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 100 {
		wg.Go(func() {
			buf := Default.Get()
			defer func() {
				buf.Reset()
				Default.Put(buf)
			}()
			s := strings.Repeat("x", i)
			buf.WriteString(s)
			assert.Equal(t, s, buf.String())
		})
	}
	wg.Wait()
}

func BenchmarkReadAll(b *testing.B) {
	payload := strings.Repeat("certificate ", 512)
	b.ReportAllocs()
	for b.Loop() {
		if _, err := ReadAll(strings.NewReader(payload)); err != nil {
			b.Fatal(err)
		}
	}
}
