package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shipits/recap/common/llm"
	"github.com/shipits/recap/internal/http/handler"
	"github.com/shipits/recap/internal/service"
)

var _ = Describe("SummaryHandler", func() {
	var (
		router    *gin.Engine
		svc       *mockSummaryService
		projectID primitive.ObjectID
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockSummaryService{}
		h := handler.NewSummaryHandler(svc)
		router.GET("/projects/:projectId/summary", h.Get)
		router.POST("/projects/:projectId/summary/generate", h.Generate)

		projectID = primitive.NewObjectID()
	})

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	post := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Describe("Get", func() {
		It("returns the cached summary", func() {
			lastUpdated := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
			svc.getCachedFn = func(_ context.Context, id primitive.ObjectID) (*service.CachedSummary, error) {
				Expect(id).To(Equal(projectID))
				return &service.CachedSummary{
					Summary:      "three students discussed auth",
					LastUpdated:  lastUpdated,
					CommentCount: 7,
					HasSummary:   true,
				}, nil
			}

			w := get(fmt.Sprintf("/projects/%s/summary", projectID.Hex()))

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["summary"]).To(Equal("three students discussed auth"))
			Expect(resp["hasSummary"]).To(BeTrue())
			Expect(resp["commentCount"]).To(BeNumerically("==", 7))
			Expect(resp["lastUpdated"]).To(Equal("2025-06-01T12:00:00Z"))
		})

		It("reports hasSummary false and omits lastUpdated when nothing is cached", func() {
			w := get(fmt.Sprintf("/projects/%s/summary", projectID.Hex()))

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["hasSummary"]).To(BeFalse())
			Expect(resp).NotTo(HaveKey("lastUpdated"))
		})

		It("returns 400 on a malformed project id", func() {
			w := get("/projects/not-a-hex-id/summary")

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 500 when the cache read fails", func() {
			svc.getCachedFn = func(_ context.Context, _ primitive.ObjectID) (*service.CachedSummary, error) {
				return nil, errors.New("socket closed")
			}

			w := get(fmt.Sprintf("/projects/%s/summary", projectID.Hex()))

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("Generate", func() {
		It("returns the generation result", func() {
			svc.getOrGenerateFn = func(_ context.Context, id primitive.ObjectID) (*service.SummaryResult, error) {
				Expect(id).To(Equal(projectID))
				return &service.SummaryResult{
					Summary:      "fresh summary",
					LastUpdated:  time.Now(),
					CommentCount: 12,
					UpdateCount:  2,
					Generated:    true,
				}, nil
			}

			w := post(fmt.Sprintf("/projects/%s/summary/generate", projectID.Hex()))

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["summary"]).To(Equal("fresh summary"))
			Expect(resp["generated"]).To(BeTrue())
			Expect(resp["commentCount"]).To(BeNumerically("==", 12))
			Expect(resp["updateCount"]).To(BeNumerically("==", 2))
		})

		It("returns 400 on a malformed project id", func() {
			w := post("/projects/zzz/summary/generate")

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 404 for an unknown project", func() {
			svc.getOrGenerateFn = func(_ context.Context, _ primitive.ObjectID) (*service.SummaryResult, error) {
				return nil, service.ErrProjectNotFound
			}

			w := post(fmt.Sprintf("/projects/%s/summary/generate", projectID.Hex()))

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("returns 503 when no provider is configured", func() {
			svc.getOrGenerateFn = func(_ context.Context, _ primitive.ObjectID) (*service.SummaryResult, error) {
				return nil, fmt.Errorf("generating summary: %w", llm.ErrNotConfigured)
			}

			w := post(fmt.Sprintf("/projects/%s/summary/generate", projectID.Hex()))

			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		})

		DescribeTable("maps upstream failures onto statuses",
			func(kind llm.UpstreamKind, expected int) {
				svc.getOrGenerateFn = func(_ context.Context, _ primitive.ObjectID) (*service.SummaryResult, error) {
					return nil, fmt.Errorf("generating summary: %w", llm.NewUpstreamError(kind, errors.New("provider failure")))
				}

				w := post(fmt.Sprintf("/projects/%s/summary/generate", projectID.Hex()))

				Expect(w.Code).To(Equal(expected))
			},
			Entry("rate limited", llm.UpstreamRateLimited, http.StatusTooManyRequests),
			Entry("timeout", llm.UpstreamTimeout, http.StatusGatewayTimeout),
			Entry("unreachable", llm.UpstreamUnreachable, http.StatusBadGateway),
			Entry("unauthorized", llm.UpstreamUnauthorized, http.StatusBadGateway),
			Entry("deployment not found", llm.UpstreamDeploymentNotFound, http.StatusBadGateway),
		)

		It("returns 500 on storage failures", func() {
			svc.getOrGenerateFn = func(_ context.Context, _ primitive.ObjectID) (*service.SummaryResult, error) {
				return nil, errors.New("persisting summary: duplicate key")
			}

			w := post(fmt.Sprintf("/projects/%s/summary/generate", projectID.Hex()))

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})

		It("never leaks provider detail in error bodies", func() {
			svc.getOrGenerateFn = func(_ context.Context, _ primitive.ObjectID) (*service.SummaryResult, error) {
				return nil, fmt.Errorf("generating summary: %w",
					llm.NewUpstreamError(llm.UpstreamUnauthorized, errors.New("api key sk-123 rejected")))
			}

			w := post(fmt.Sprintf("/projects/%s/summary/generate", projectID.Hex()))

			Expect(w.Code).To(Equal(http.StatusBadGateway))
			Expect(w.Body.String()).NotTo(ContainSubstring("sk-123"))
		})
	})
})
