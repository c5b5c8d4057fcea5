package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
)

//go:generate go run github.com/sublee/patchgen/cmd/patchgen

// Job is a unit of work tracked by the server.
//
//patchgen:derive from
//patchgen:patch attr="JobPatch is the body of PATCH /jobs/:id."
type Job struct {
	Title    string `json:"title"`    //patchgen:patch attr=`json:"title,omitzero"`
	Status   string `json:"status"`   //patchgen:patch attr=`json:"status,omitzero"`
	Priority int    `json:"priority"` //patchgen:patch attr=`json:"priority,omitzero"`

	//patchgen:patch with=OwnerPatch, attr=`json:"owner,omitzero"`
	Owner Owner `json:"owner"`
}

//patchgen:derive from
type Owner struct {
	Name  string `json:"name"`  //patchgen:patch attr=`json:"name,omitzero"`
	Email string `json:"email"` //patchgen:patch attr=`json:"email,omitzero"`
}

// jobPatchSchema describes JobPatch in JSON. null means "leave unchanged".
var jobPatchSchema = func() *openapi3.Schema {
	noExtra := false
	owner := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema().WithNullable()).
		WithProperty("email", openapi3.NewStringSchema().WithNullable()).
		WithNullable()
	owner.AdditionalProperties = openapi3.AdditionalProperties{Has: &noExtra}

	job := openapi3.NewObjectSchema().
		WithProperty("title", openapi3.NewStringSchema().WithMinLength(1).WithNullable()).
		WithProperty("status", openapi3.NewStringSchema().WithEnum("todo", "doing", "done").WithNullable()).
		WithProperty("priority", openapi3.NewIntegerSchema().WithMin(0).WithNullable()).
		WithProperty("owner", owner)
	job.AdditionalProperties = openapi3.AdditionalProperties{Has: &noExtra}
	return job
}()

type server struct {
	mu   sync.Mutex
	jobs map[int]Job

	// history keeps the merged patch of every job since it was created.
	history map[int]JobPatch
}

func (s *server) patchJob(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid job id")
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := jobPatchSchema.VisitJSON(doc); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	p := NewJobPatch()
	if err := json.Unmarshal(body, &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no such job")
	}
	p.ApplyTo(&job)
	s.jobs[id] = job
	s.history[id] = s.history[id].Merge(p)

	return c.JSON(http.StatusOK, job)
}

func (s *server) jobHistory(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid job id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.history[id]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no such job")
	}
	return c.JSON(http.StatusOK, p)
}

func newServer() *echo.Echo {
	first := Job{Title: "Write docs", Status: "todo", Priority: 1, Owner: Owner{Name: "Alice", Email: "alice@example.com"}}

	s := &server{
		jobs:    map[int]Job{1: first},
		history: map[int]JobPatch{1: first.ToPatch()},
	}

	e := echo.New()
	e.HideBanner = true
	e.PATCH("/jobs/:id", s.patchJob)
	e.GET("/jobs/:id/history", s.jobHistory)
	return e
}

func request(e *echo.Echo, method, target, body string) string {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return fmt.Sprintf("%d %s", rec.Code, strings.TrimSpace(rec.Body.String()))
}

func main() {
	e := newServer()

	// Output: 200 {"title":"Write docs","status":"doing","priority":1,"owner":{"name":"Alice","email":"alice@example.com"}}
	fmt.Println(request(e, http.MethodPatch, "/jobs/1", `{"status": "doing"}`))

	// Output: 200 {"title":"Write docs","status":"doing","priority":3,"owner":{"name":"Bob","email":"alice@example.com"}}
	fmt.Println(request(e, http.MethodPatch, "/jobs/1", `{"priority": 3, "owner": {"name": "Bob"}, "title": null}`))

	// Output: 422 {"message":...}
	fmt.Println(request(e, http.MethodPatch, "/jobs/1", `{"status": "paused"}`))

	// Output: 404 {"message":"no such job"}
	fmt.Println(request(e, http.MethodPatch, "/jobs/2", `{}`))

	// Output: 200 {"title":"Write docs","status":"doing","priority":3,"owner":{"name":"Bob","email":"alice@example.com"}}
	fmt.Println(request(e, http.MethodGet, "/jobs/1/history", ""))
}
