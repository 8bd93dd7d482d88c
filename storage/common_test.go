package storage

import (
	"bytes"
	"context"
	"encoding/hex"
	"io/fs"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func randInt(start, stop int) int {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return r.Intn(stop-start) + start
}

func randHex() string {
	buf := make([]byte, randInt(3, 10))
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	r.Read(buf)
	return hex.EncodeToString(buf)
}

func pushObject(t *testing.T, provider Provider) (string, string) {
	contents := randHex()
	data := []byte(contents)
	key := "1-abc-main/" + randHex() + "/" + randHex() + ".txt"

	err := provider.Put(context.Background(), key, "text/plain; charset=UTF-8", int64(len(data)), bytes.NewReader(data))
	require.NoError(t, err)

	return key, contents
}

func countFiles(t *testing.T, path string) int {
	currentFileCount := 0
	err := filepath.WalkDir(path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			currentFileCount += 1
		}
		return nil
	})
	require.NoError(t, err)
	return currentFileCount
}

func testPut(t *testing.T, provider Provider, count func(t *testing.T) int, perObject int) {
	initial := count(t)
	pushObject(t, provider)
	pushObject(t, provider)
	require.Equal(t, initial+2*perObject, count(t))
}
