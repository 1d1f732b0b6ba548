package handlers_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/helpers"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/models"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/models/migrations"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/models/other"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/utils/renderer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/unrolled/render"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newRender() *render.Render {
	return renderer.New("../../templates", true)
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, p models.Product) models.Product {
	t.Helper()
	if p.Price.IsZero() {
		p.Price = decimal.NewFromInt(100000)
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func withCartCount(r *http.Request, count int) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), helpers.CartCountKey, count))
}

// uploadRequest builds a multipart POST; a nil image omits the file part.
func uploadRequest(t *testing.T, target string, image []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if image != nil {
		part, err := mw.CreateFormFile("imageFile", "flower.jpg")
		require.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader(image))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

type MockImageSearcher struct {
	mock.Mock
}

func (m *MockImageSearcher) Search(ctx context.Context, img []byte, limit int) ([]other.ImageSearchResult, error) {
	args := m.Called(ctx, img, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]other.ImageSearchResult), args.Error(1)
}

func (m *MockImageSearcher) RecognizeFlowerName(ctx context.Context, img []byte) (string, error) {
	args := m.Called(ctx, img)
	return args.String(0), args.Error(1)
}

func (m *MockImageSearcher) IsFlowerImage(img []byte) bool {
	return m.Called(img).Bool(0)
}

func fixedClock() time.Time {
	return time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)
}
