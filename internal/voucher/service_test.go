package voucher_test

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elmerluis0129/WanMarKay-sub000/internal/voucher"
)

func TestService_SaveAndOpen(t *testing.T) {
	svc, err := voucher.NewService(t.TempDir())
	require.NoError(t, err)

	name, err := svc.Save(strings.NewReader("fake image bytes"), "recibo.JPG")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".jpg"))

	f, err := svc.Open(name)
	require.NoError(t, err)
	defer f.Close()

	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(content))
}

func TestService_SaveRejectsUnsupportedType(t *testing.T) {
	svc, err := voucher.NewService(t.TempDir())
	require.NoError(t, err)

	_, err = svc.Save(strings.NewReader("#!/bin/sh"), "payload.sh")
	assert.ErrorIs(t, err, voucher.ErrUnsupportedType)
}

func TestService_OpenRejectsPathTraversal(t *testing.T) {
	svc, err := voucher.NewService(t.TempDir())
	require.NoError(t, err)

	_, err = svc.Open("../../etc/passwd")
	assert.ErrorIs(t, err, voucher.ErrNotFound)
}

func TestService_WriteZip(t *testing.T) {
	svc, err := voucher.NewService(t.TempDir())
	require.NoError(t, err)

	first, err := svc.Save(strings.NewReader("first"), "a.png")
	require.NoError(t, err)

	second, err := svc.Save(strings.NewReader("second"), "b.pdf")
	require.NoError(t, err)

	var buf bytes.Buffer

	written, err := svc.WriteZip(&buf, []string{first, second, "missing.png"})
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Len(t, zr.File, 2)
}
