package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestWithResponseMetaStampsTimingIntoBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	router := gin.New()
	router.Use(WithResponseMeta())
	router.GET("/", func(c *gin.Context) {
		SetCacheHit(c, true)
		StampProcessingTime(c)
		c.JSON(http.StatusOK, gin.H{"meta": ExtractMeta(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}
	var body struct {
		Meta map[string]interface{} `json:"meta"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Meta["cache_hit"] != true {
		t.Fatalf("unexpected cache_hit: %v", body.Meta["cache_hit"])
	}
	elapsed, ok := body.Meta["processing_time_ms"].(float64)
	if !ok {
		t.Fatalf("expected processing_time_ms in body meta, got %v", body.Meta)
	}
	if elapsed < 0 {
		t.Fatalf("negative processing time: %v", elapsed)
	}
}

func TestStampProcessingTimeWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	StampProcessingTime(c)
	if meta := ExtractMeta(c); meta != nil {
		t.Fatalf("expected no meta without a recorded start, got %v", meta)
	}

	SetCacheHit(c, false)
	StampProcessingTime(c)
	meta := ExtractMeta(c)
	if meta == nil {
		t.Fatal("expected meta map after SetCacheHit")
	}
	if meta["cache_hit"] != false {
		t.Fatalf("unexpected cache_hit: %v", meta["cache_hit"])
	}
	if _, ok := meta["processing_time_ms"]; ok {
		t.Fatal("processing time should not be stamped without the middleware")
	}
}

func TestExtractMetaWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if meta := ExtractMeta(c); meta != nil {
		t.Fatalf("expected nil meta, got %v", meta)
	}
}
