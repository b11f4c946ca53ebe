package api_router_test

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	internalApp "github.com/fitkeys/workout-sync-service/internal/app"
	"github.com/fitkeys/workout-sync-service/internal/dao"
	"github.com/fitkeys/workout-sync-service/internal/model"
	"github.com/fitkeys/workout-sync-service/internal/routers"

	"github.com/bytedance/sonic"
	"github.com/creasty/defaults"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	validatorV10 "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := dao.NewDBEngine(dao.Config{Type: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrateAll(db))

	cfg := new(internalApp.AppConfig)
	require.NoError(t, defaults.Set(cfg))

	a, err := internalApp.NewApp(cfg, zap.NewNop(), db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown(nil) })

	uni := ut.New(en.New(), en.New(), zh.New())
	if validate, ok := binding.Validator.Engine().(*validatorV10.Validate); ok {
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		enTran, _ := uni.GetTranslator("en")
		require.NoError(t, en_translations.RegisterDefaultTranslations(validate, enTran))
	}

	r, stopBridge, err := routers.NewRouter(a, uni)
	require.NoError(t, err)
	t.Cleanup(stopBridge)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	var reqBody *strings.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	} else {
		reqBody = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reqBody)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &parsed))
	return w.Code, parsed
}

func TestCategoryAPI_Lifecycle(t *testing.T) {
	r := newTestRouter(t)

	status, res := doJSON(t, r, http.MethodPost, "/api/categories", `{"name":"Push Day"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(201), res["code"])

	data := res["data"].(map[string]interface{})
	require.Equal(t, "Push Day", data["name"])
	id := data["id"].(string)
	require.NotEmpty(t, id)

	status, res = doJSON(t, r, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, status)
	list := res["data"].(map[string]interface{})
	require.Equal(t, float64(1), list["count"])

	status, res = doJSON(t, r, http.MethodDelete, "/api/categories", `{"id":"`+id+`"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(203), res["code"])

	_, res = doJSON(t, r, http.MethodGet, "/api/categories", "")
	list = res["data"].(map[string]interface{})
	require.Equal(t, float64(0), list["count"])
}

func TestCategoryAPI_BindingValidation(t *testing.T) {
	r := newTestRouter(t)

	status, res := doJSON(t, r, http.MethodPost, "/api/categories", `{}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(10001), res["code"])
}

func TestWatchTimeAPI_NegativeRejected(t *testing.T) {
	r := newTestRouter(t)

	status, res := doJSON(t, r, http.MethodPost, "/api/watchtime", `{"entryId":"e1","seconds":-5}`)
	require.Equal(t, http.StatusOK, status)
	// 领域层校验错误通过统一错误响应返回
	require.Equal(t, float64(20008), res["code"])
}

func TestAnalyticsAPI_SummaryEmpty(t *testing.T) {
	r := newTestRouter(t)

	status, res := doJSON(t, r, http.MethodGet, "/api/summary", "")
	require.Equal(t, http.StatusOK, status)
	data := res["data"].(map[string]interface{})
	require.Equal(t, "No sessions planned this week. Time to create a schedule! 📅", data["summary"])
}
