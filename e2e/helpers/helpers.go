package helpers

import (
	"encoding/json"
	"image/color"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MichalMitros/pim-sync/internal/pim"
	pgmodels "github.com/MichalMitros/pim-sync/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/pim-sync/internal/platform/storage/storagetesting"
	"github.com/disintegration/imaging"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

const (
	contentType = "Content-Type"
	// Token is bearer token issued by FakePIM.
	Token = "e2e-token"
)

// FakePIM is in-memory PIM API served over http.
type FakePIM struct {
	Server *httptest.Server

	mu         sync.Mutex
	categories []pim.Category
	products   []map[string]any
	features   map[string]pim.Feature
	pageSize   int
	scrolls    []url.Values
}

// NewFakePIM starts FakePIM serving categories, products and features.
// Products are scrolled in pages of pageSize.
func NewFakePIM(t *testing.T, categories []pim.Category, products []map[string]any, features []pim.Feature, pageSize int) *FakePIM {
	t.Helper()

	f := &FakePIM{
		categories: categories,
		products:   products,
		features:   lo.KeyBy(features, func(feature pim.Feature) string { return feature.SyncUID }),
		pageSize:   pageSize,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /sign-in/", func(wrt http.ResponseWriter, _ *http.Request) {
		writeJSON(t, wrt, map[string]any{"access": map[string]any{"token": Token}})
	})
	mux.HandleFunc("GET /catalog", f.authorized(t, func(wrt http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(t, wrt, f.categories)
	}))
	mux.HandleFunc("GET /product/scroll", f.authorized(t, f.scroll(t)))
	mux.HandleFunc("GET /feature/uid/{uid}", f.authorized(t, func(wrt http.ResponseWriter, req *http.Request) {
		feature, ok := f.features[req.PathValue("uid")]
		if !ok {
			http.NotFound(wrt, req)
			return
		}
		writeJSON(t, wrt, feature)
	}))
	mux.HandleFunc("GET /image/{name}", func(wrt http.ResponseWriter, _ *http.Request) {
		img := imaging.New(8, 6, color.NRGBA{R: 200, A: 255})
		wrt.Header().Add(contentType, "image/jpeg")
		if err := imaging.Encode(wrt, img, imaging.JPEG); err != nil {
			require.FailNow(t, "can't encode image", err)
		}
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)

	return f
}

// SetProducts replaces products served by FakePIM.
func (f *FakePIM) SetProducts(products []map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products = products
}

// Scrolls returns query parameters of every scroll request.
func (f *FakePIM) Scrolls() []url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]url.Values{}, f.scrolls...)
}

func (f *FakePIM) scroll(t *testing.T) http.HandlerFunc {
	return func(wrt http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		query := req.URL.Query()
		f.scrolls = append(f.scrolls, query)

		page := 0
		if cursor := query.Get("scrollId"); cursor != "" {
			page, _ = strconv.Atoi(strings.TrimPrefix(cursor, "page-"))
		}

		from := min(page*f.pageSize, len(f.products))
		to := min(from+f.pageSize, len(f.products))

		next := ""
		if to < len(f.products) {
			next = "page-" + strconv.Itoa(page+1)
		}

		writeJSON(t, wrt, map[string]any{
			"scrollId": next,
			"products": f.products[from:to],
		})
	}
}

func (f *FakePIM) authorized(t *testing.T, next http.HandlerFunc) http.HandlerFunc {
	t.Helper()

	return func(wrt http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer "+Token {
			wrt.WriteHeader(http.StatusUnauthorized)
			return
		}
		next(wrt, req)
	}
}

func writeJSON(t *testing.T, wrt http.ResponseWriter, data any) {
	wrt.Header().Add(contentType, "application/json")
	if err := json.NewEncoder(wrt).Encode(map[string]any{"success": true, "data": data}); err != nil {
		require.FailNow(t, "can't encode response", err)
	}
}

// FakeProduct returns PIM product JSON object in category with params.
func FakeProduct(uid, header, categoryUID string, params map[string][]any) map[string]any {
	return map[string]any{
		"syncUid":    uid,
		"header":     header,
		"fullHeader": header + " full",
		"content":    "<p>" + header + "</p>",
		"catalogUid": categoryUID,
		"status":     "ACTIVE",
		"price":      "19,99",
		"weight":     1.5,
		"width":      200,
		"height":     100,
		"length":     50,
		"code":       "code-" + uid,
		"barCode":    "590" + uid,
		"manufacturer": map[string]any{
			"syncUid": "bosch",
			"header":  "Bosch",
		},
		"params": lo.MapToSlice(params, func(paramUID string, values []any) map[string]any {
			return map[string]any{"paramUid": paramUID, "values": values}
		}),
		"picture": uid + "-main",
	}
}

// WaitForRunToBeFinished is blocking helper function, returns latest run after it is finished.
func WaitForRunToBeFinished(t *testing.T, queryable qrm.Queryable, previousRuns int) pgmodels.SyncRun {
	t.Helper()

	timeout := time.After(30 * time.Second)
	for {
		select {
		case <-timeout:
			require.FailNow(t, "run wasn't finished in time")
		case <-time.After(250 * time.Millisecond):
		}

		runs := storagetesting.GetRuns(t, queryable)
		if len(runs) > previousRuns && runs[len(runs)-1].CompletedAt != nil {
			return runs[len(runs)-1]
		}
	}
}
