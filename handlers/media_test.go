package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMedia struct {
	objects map[string][]byte
	putErr  error
}

func (f *fakeMedia) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[key] = b
	return nil
}

func (f *fakeMedia) URL(ctx context.Context, key string) (string, error) {
	return "https://media.example.com/" + key + "?sig=1", nil
}

func upload(t *testing.T, store MediaStore, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	g := gin.New()
	RegisterMediaRoutes(g, store)
	req := httptest.NewRequest(http.MethodPost, "/api/media", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func TestMediaUpload(t *testing.T) {
	store := &fakeMedia{objects: map[string][]byte{}}
	w := upload(t, store, "Tomatoes.PNG", "image/png", []byte("png-bytes"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp["key"], "media/"))
	assert.True(t, strings.HasSuffix(resp["key"], ".png"))
	assert.Equal(t, "https://media.example.com/"+resp["key"]+"?sig=1", resp["url"])
	assert.Equal(t, []byte("png-bytes"), store.objects[resp["key"]])
}

func TestMediaUploadRejections(t *testing.T) {
	store := &fakeMedia{objects: map[string][]byte{}}
	assert.Equal(t, http.StatusUnsupportedMediaType, upload(t, store, "a.txt", "text/plain", []byte("x")).Code)
	assert.Equal(t, http.StatusServiceUnavailable, upload(t, nil, "a.png", "image/png", []byte("x")).Code)

	store.putErr = errors.New("bucket gone")
	assert.Equal(t, http.StatusInternalServerError, upload(t, store, "a.png", "image/png", []byte("x")).Code)
	assert.Empty(t, store.objects)
}
