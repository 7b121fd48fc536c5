package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/h2non/gock"
	"github.com/stretchr/testify/suite"

	"github.com/aanand-mishra/library-proxy/internal/config"
	"github.com/aanand-mishra/library-proxy/internal/http/middleware"
	"github.com/aanand-mishra/library-proxy/internal/types"
	"github.com/aanand-mishra/library-proxy/internal/upstream"
	"github.com/aanand-mishra/library-proxy/internal/utils/response"
)

const baseURL = "http://library.test/api"

type httpapiSuite struct {
	suite.Suite

	cfg    *config.Config
	client *Client
}

func TestHTTPAPISuite(t *testing.T) {
	suite.Run(t, new(httpapiSuite))
}

func (s *httpapiSuite) SetupSuite() {
	s.cfg = &config.Config{
		BaseURL:  baseURL + "/",
		Upstream: config.Upstream{Timeout: time.Second},
	}
}

func (s *httpapiSuite) SetupTest() {
	client, err := New(s.cfg)
	s.Require().NoError(err)
	s.client = client
	gock.InterceptClient(s.client.http)
}

func (s *httpapiSuite) TearDownTest() {
	s.True(gock.IsDone(), "pending upstream mocks")
	gock.RestoreClient(s.client.http)
	gock.Off()
}

func (s *httpapiSuite) Test_New_RejectsRelativeURL() {
	_, err := New(&config.Config{BaseURL: "/api"})
	s.Error(err)
}

func (s *httpapiSuite) Test_ListBooks_ForwardsQueryAndNarrows() {
	gock.New(baseURL).
		Get("/books").
		MatchParam("page", "2").
		MatchParam("search", "rizal").
		MatchHeader("Accept", "application/json").
		MatchHeader(middleware.HeaderRequestID, "req-1").
		Reply(http.StatusOK).
		JSON(map[string]any{
			"page":       2,
			"size":       10,
			"totalPages": 3,
			"totalItems": 25,
			"items": []map[string]any{
				{"id": 11, "book_name": "Noli Me Tangere", "status": "available"},
			},
		})

	ctx := middleware.WithRequestID(context.Background(), "req-1")
	table, err := s.client.ListBooks(ctx, url.Values{"page": {"2"}, "search": {"rizal"}})

	s.Require().NoError(err)
	s.Equal(3, table.TotalPages)
	s.Equal(25, table.TotalItems)
	s.JSONEq(`[{"id":11,"book_name":"Noli Me Tangere","status":"available"}]`, string(table.Items))
}

func (s *httpapiSuite) Test_ListStudents_Success() {
	gock.New(baseURL).
		Get("/students").
		MatchParam("status", "active").
		Reply(http.StatusOK).
		JSON(map[string]any{
			"page":       1,
			"size":       5,
			"totalPages": 1,
			"totalItems": 2,
			"items": []map[string]any{
				{"id": 1, "student_id": "2024-0001", "first_name": "Maria", "middle_name": "Santos", "last_name": "Clara", "status": "active"},
				{"id": 2, "student_id": "2024-0002", "first_name": "Juan", "last_name": "Cruz", "status": "active", "full_name": "Cruz, Juan"},
			},
		})

	table, err := s.client.ListStudents(context.Background(), url.Values{"status": {"active"}})

	s.Require().NoError(err)
	s.Equal(1, table.TotalPages)
	s.Equal(2, table.TotalItems)
	s.JSONEq(`[
		{"id":1,"student_id":"2024-0001","first_name":"Maria","middle_name":"Santos","last_name":"Clara","status":"active","full_name":"Maria Santos Clara"},
		{"id":2,"student_id":"2024-0002","first_name":"Juan","last_name":"Cruz","status":"active","full_name":"Cruz, Juan"}
	]`, string(table.Items))
}

func (s *httpapiSuite) Test_ListBooks_SQLTimestamps() {
	created := "2024-01-01 10:00:00"
	gock.New(baseURL).
		Get("/books").
		Reply(http.StatusOK).
		JSON(types.Page[types.Book]{
			Page:       1,
			Size:       10,
			TotalPages: 1,
			TotalItems: 1,
			Items: []types.Book{
				{ID: 1, BookName: "Noli Me Tangere", Status: types.BookAvailable, CreatedAt: json.RawMessage(`"` + created + `"`)},
			},
		})

	table, err := s.client.ListBooks(context.Background(), nil)

	s.Require().NoError(err)
	s.Contains(string(table.Items), created)
}

func (s *httpapiSuite) Test_ListStudents_Malformed() {
	gock.New(baseURL).
		Get("/students").
		Reply(http.StatusOK).
		JSON(map[string]any{"success": true, "data": []any{}})

	_, err := s.client.ListStudents(context.Background(), nil)

	s.ErrorIs(err, upstream.ErrMalformedResponse)
}

func (s *httpapiSuite) Test_CreateBook_ForwardsBody() {
	gock.New(baseURL).
		Post("/books").
		MatchType("json").
		JSON(map[string]any{"book_name": "Florante at Laura", "status": "available"}).
		Reply(http.StatusCreated).
		JSON(map[string]any{"success": true, "data": map[string]any{"id": 99}})

	err := s.client.CreateBook(context.Background(), []byte(`{"book_name":"Florante at Laura","status":"available"}`))

	s.NoError(err)
}

func (s *httpapiSuite) Test_CreateBook_UpstreamValidationError() {
	gock.New(baseURL).
		Post("/books").
		Reply(http.StatusUnprocessableEntity).
		JSON(map[string]any{
			"success": false,
			"message": "The given data was invalid.",
			"errors":  map[string][]string{"isbn": {"The isbn has already been taken."}},
		})

	err := s.client.CreateBook(context.Background(), []byte(`{"isbn":"1"}`))

	var statusErr *upstream.StatusError
	s.Require().True(errors.As(err, &statusErr))
	s.Equal(http.StatusUnprocessableEntity, statusErr.Code)
	s.Equal(upstream.ResourceBooks, statusErr.Resource)
	s.Equal("The given data was invalid.", statusErr.Message)
	s.Equal([]string{"The isbn has already been taken."}, statusErr.Errors["isbn"])
}

func (s *httpapiSuite) Test_GetDashboard_UnwrapsData() {
	gock.New(baseURL).
		Get("/dashboard").
		Reply(http.StatusOK).
		JSON(types.Envelope[map[string]any]{
			Success: true,
			Data:    map[string]any{"total_books": 40, "total_students": 12},
		})

	data, err := s.client.GetDashboard(context.Background())

	s.Require().NoError(err)
	s.JSONEq(`{"total_books":40,"total_students":12}`, string(data))
}

func (s *httpapiSuite) Test_GetDashboard_ServerError() {
	gock.New(baseURL).
		Get("/dashboard").
		Reply(http.StatusInternalServerError).
		BodyString("<html>oops</html>")

	_, err := s.client.GetDashboard(context.Background())

	var statusErr *upstream.StatusError
	s.Require().True(errors.As(err, &statusErr))
	s.Equal(http.StatusInternalServerError, statusErr.Code)
	s.Empty(statusErr.Message)
}

func (s *httpapiSuite) Test_GetDashboard_ClientTimeout() {
	client, err := New(&config.Config{
		BaseURL:  baseURL,
		Upstream: config.Upstream{Timeout: 50 * time.Millisecond},
	})
	s.Require().NoError(err)
	gock.InterceptClient(client.http)
	defer gock.RestoreClient(client.http)

	gock.New(baseURL).
		Get("/dashboard").
		Reply(http.StatusOK).
		Delay(2 * time.Second).
		JSON(map[string]any{"success": true, "data": map[string]any{}})

	start := time.Now()
	_, err = client.GetDashboard(context.Background())

	s.Require().Error(err)
	s.Less(time.Since(start), time.Second)
	code, _ := response.UpstreamError(err)
	s.Equal(http.StatusGatewayTimeout, code)
}

func (s *httpapiSuite) Test_GetDashboard_Unreachable() {
	gock.New(baseURL).
		Get("/dashboard").
		ReplyError(errors.New("connection refused"))

	_, err := s.client.GetDashboard(context.Background())

	s.ErrorContains(err, "connection refused")
	var statusErr *upstream.StatusError
	s.False(errors.As(err, &statusErr))
}
