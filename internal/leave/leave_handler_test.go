package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-leavehub/internal/leave"
	leaveerrors "go-leavehub/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	createFn        func(ctx context.Context, employeeID int, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	approveFn       func(ctx context.Context, id, approverID int, req leave.DecisionRequest) (leave.LeaveResponse, error)
	rejectFn        func(ctx context.Context, id, approverID int, req leave.DecisionRequest) (leave.LeaveResponse, error)
	cancelFn        func(ctx context.Context, id, employeeID int) (leave.LeaveResponse, error)
	deleteFn        func(ctx context.Context, id int) error
	getAllFn        func(ctx context.Context) ([]leave.LeaveResponse, error)
	getByIDFn       func(ctx context.Context, id int) (leave.LeaveResponse, error)
	getByEmployeeFn func(ctx context.Context, employeeID int) ([]leave.LeaveResponse, error)
	getPendingFn    func(ctx context.Context) ([]leave.LeaveResponse, error)
	getBalanceFn    func(ctx context.Context, employeeID, year int) (leave.BalanceResponse, error)
	statisticsFn    func(ctx context.Context) (leave.LeaveStatistics, error)
}

func (f *fakeService) Create(ctx context.Context, employeeID int, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.createFn(ctx, employeeID, req)
}
func (f *fakeService) Approve(ctx context.Context, id, approverID int, req leave.DecisionRequest) (leave.LeaveResponse, error) {
	return f.approveFn(ctx, id, approverID, req)
}
func (f *fakeService) Reject(ctx context.Context, id, approverID int, req leave.DecisionRequest) (leave.LeaveResponse, error) {
	return f.rejectFn(ctx, id, approverID, req)
}
func (f *fakeService) Cancel(ctx context.Context, id, employeeID int) (leave.LeaveResponse, error) {
	return f.cancelFn(ctx, id, employeeID)
}
func (f *fakeService) Delete(ctx context.Context, id int) error { return f.deleteFn(ctx, id) }
func (f *fakeService) GetAll(ctx context.Context) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx)
}
func (f *fakeService) GetByID(ctx context.Context, id int) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeService) GetByEmployee(ctx context.Context, employeeID int) ([]leave.LeaveResponse, error) {
	return f.getByEmployeeFn(ctx, employeeID)
}
func (f *fakeService) GetPending(ctx context.Context) ([]leave.LeaveResponse, error) {
	return f.getPendingFn(ctx)
}
func (f *fakeService) GetBalance(ctx context.Context, employeeID, year int) (leave.BalanceResponse, error) {
	return f.getBalanceFn(ctx, employeeID, year)
}
func (f *fakeService) Statistics(ctx context.Context) (leave.LeaveStatistics, error) {
	return f.statisticsFn(ctx)
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  json.RawMessage `json:"meta"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("created", func(t *testing.T) {
		svc := &fakeService{
			createFn: func(ctx context.Context, employeeID int, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, 7, employeeID)
				assert.Equal(t, "VACATION", req.Type)
				return leave.LeaveResponse{ID: 1, EmployeeID: employeeID, Status: leave.StatusPending, Days: 5}, nil
			},
		}
		h := leave.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("employee_id", 7)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves",
			strings.NewReader(`{"type":"VACATION","start_date":"2030-06-03","end_date":"2030-06-07","reason":"trip"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)
		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Ok)
		assert.Contains(t, string(env.Data), `"status":"PENDING"`)
	})

	t.Run("unknown type rejected at binding", func(t *testing.T) {
		svc := &fakeService{
			createFn: func(ctx context.Context, employeeID int, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				t.Fatal("service must not be called")
				return leave.LeaveResponse{}, nil
			},
		}
		h := leave.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("employee_id", 7)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves",
			strings.NewReader(`{"type":"SABBATICAL","start_date":"2030-06-03","end_date":"2030-06-07"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		assert.False(t, env.Ok)
	})

	t.Run("service error mapped to status and code", func(t *testing.T) {
		svc := &fakeService{
			createFn: func(ctx context.Context, employeeID int, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrStartDateInPast
			},
		}
		h := leave.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("employee_id", 7)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves",
			strings.NewReader(`{"type":"VACATION","start_date":"2020-01-01","end_date":"2020-01-02"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		if assert.NotNil(t, env.Error) {
			assert.Equal(t, "INVALID_INPUT", env.Error.Code)
			assert.Contains(t, env.Error.Message, "start date")
		}
	})
}

func TestHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	all := make([]leave.LeaveResponse, 15)
	for i := range all {
		all[i] = leave.LeaveResponse{ID: i + 1}
	}
	svc := &fakeService{
		getAllFn: func(ctx context.Context) ([]leave.LeaveResponse, error) { return all, nil },
	}
	h := leave.NewHandler(svc)

	t.Run("default page size", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves", nil)

		h.GetAll(c)
		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		var page []leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &page))
		assert.Len(t, page, 10)
		assert.Contains(t, string(env.Meta), `"total":15`)
	})

	t.Run("second page", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves?page=2&page_size=10", nil)

		h.GetAll(c)
		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		var page []leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &page))
		assert.Len(t, page, 5)
		assert.Equal(t, 11, page[0].ID)
	})
}

func TestHandler_GetById(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getByIDFn: func(ctx context.Context, id int) (leave.LeaveResponse, error) {
			if id != 3 {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			}
			return leave.LeaveResponse{ID: 3, Status: leave.StatusApproved}, nil
		},
	}
	h := leave.NewHandler(svc)

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: "3"}}
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/3", nil)

		h.GetById(c)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: "5"}}
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/5", nil)

		h.GetById(c)
		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w)
		if assert.NotNil(t, env.Error) {
			assert.Equal(t, "NOT_FOUND", env.Error.Code)
		}
	})

	t.Run("garbage id", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/abc", nil)

		h.GetById(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		if assert.NotNil(t, env.Error) {
			assert.Equal(t, "INVALID_INPUT", env.Error.Code)
			assert.Equal(t, "invalid leave id", env.Error.Message)
		}
	})
}

func TestHandler_Decisions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("approve passes approver from context", func(t *testing.T) {
		svc := &fakeService{
			approveFn: func(ctx context.Context, id, approverID int, req leave.DecisionRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, 8, id)
				assert.Equal(t, 42, approverID)
				assert.Equal(t, "ok by me", req.Notes)
				return leave.LeaveResponse{ID: id, Status: leave.StatusApproved}, nil
			},
		}
		h := leave.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("user_id", 42)
		c.Params = gin.Params{{Key: "id", Value: "8"}}
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/8/approve",
			strings.NewReader(`{"notes":"ok by me"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Approve(c)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("reject on settled request returns conflict state", func(t *testing.T) {
		svc := &fakeService{
			rejectFn: func(ctx context.Context, id, approverID int, req leave.DecisionRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.NotPending(leave.StatusCancelled)
			},
		}
		h := leave.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("user_id", 42)
		c.Params = gin.Params{{Key: "id", Value: "8"}}
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/8/reject", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Reject(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		if assert.NotNil(t, env.Error) {
			assert.Equal(t, "INVALID_STATE", env.Error.Code)
		}
	})

	t.Run("cancel passes owner from context", func(t *testing.T) {
		svc := &fakeService{
			cancelFn: func(ctx context.Context, id, employeeID int) (leave.LeaveResponse, error) {
				assert.Equal(t, 8, id)
				assert.Equal(t, 7, employeeID)
				return leave.LeaveResponse{ID: id, Status: leave.StatusCancelled}, nil
			},
		}
		h := leave.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("employee_id", 7)
		c.Params = gin.Params{{Key: "id", Value: "8"}}
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/8/cancel", nil)

		h.Cancel(c)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHandler_Balance(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getBalanceFn: func(ctx context.Context, employeeID, year int) (leave.BalanceResponse, error) {
			return leave.BalanceResponse{EmployeeID: employeeID, Year: year, VacationRemaining: "12"}, nil
		},
	}
	h := leave.NewHandler(svc)

	t.Run("explicit year", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "employeeId", Value: "7"}}
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/employee/7/balance?year=2027", nil)

		h.GetBalance(c)
		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		assert.Contains(t, string(env.Data), `"year":2027`)
	})

	t.Run("own balance defaults to current year", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("employee_id", 7)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/my/balance", nil)

		h.GetMyBalance(c)
		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		assert.Contains(t, string(env.Data), `"employee_id":7`)
	})

	t.Run("bad year", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("employee_id", 7)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/my/balance?year=never", nil)

		h.GetMyBalance(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Statistics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		statisticsFn: func(ctx context.Context) (leave.LeaveStatistics, error) {
			byType := make(map[leave.LeaveType]int)
			for _, lt := range leave.AllLeaveTypes {
				byType[lt] = 0
			}
			byType[leave.TypeVacation] = 2
			return leave.LeaveStatistics{
				TotalRequests:  2,
				RequestsByType: byType,
				RecentRequests: []leave.LeaveRequestWithEmployee{},
			}, nil
		},
	}
	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/leaves/statistics", nil)

	h.GetStatistics(c)
	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Contains(t, string(env.Data), `"total_requests":2`)
	assert.Contains(t, string(env.Data), `"STUDY":0`)
}
