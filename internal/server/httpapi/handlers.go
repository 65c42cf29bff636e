package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/tasklist/internal/common"
	"github.com/dmitrijs2005/tasklist/internal/server/models"
	"github.com/go-chi/chi/v5"
)

// signupRequest uses pointers so a missing field is told apart from an
// empty one.
type signupRequest struct {
	UserName *string `json:"userName" validate:"required"`
	Email    *string `json:"email" validate:"required,email"`
	Password *string `json:"password" validate:"required,min=5"`
}

type signupResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

// createTaskRequest keeps the title raw since any JSON value is accepted.
type createTaskRequest struct {
	Title json.RawMessage `json:"title"`
}

// titleText renders a JSON value as a task title. Strings are unquoted,
// null or absent becomes "", anything else keeps its compact JSON text.
func titleText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type updateTaskRequest struct {
	Completed *bool `json:"completed"`
}

func (s *HTTPServer) handleHello(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("hello world"))
}

func (s *HTTPServer) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, decodeMessage(err))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeMessage(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	user, err := s.users.Register(r.Context(), *req.UserName, *req.Email, *req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrDuplicateEmail):
			writeMessage(w, http.StatusBadRequest, msgEmailExists)
		case errors.Is(err, common.ErrValidation):
			writeMessage(w, http.StatusBadRequest, err.Error())
		default:
			s.logger.Error(r.Context(), "signup failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, msgCreateUserError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, signupResponse{Message: msgUserCreated, User: user})
}

func (s *HTTPServer) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, signinResponse{Message: decodeMessage(err)})
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeJSON(w, http.StatusUnauthorized, signinResponse{Message: msgInvalidLogin})
			return
		}
		s.logger.Error(r.Context(), "signin failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, signinResponse{Message: msgSigninError})
		return
	}

	writeJSON(w, http.StatusOK, signinResponse{Success: true, Message: msgSignedIn, Token: token})
}

func (s *HTTPServer) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerIDFromContext(r.Context())

	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, decodeMessage(err))
		return
	}

	title, err := titleText(req.Title)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	task, err := s.tasks.Create(r.Context(), ownerID, title)
	if err != nil {
		s.logger.Error(r.Context(), "create task failed", "error", err)
		writeFault(w, msgCreateTaskError, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *HTTPServer) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerIDFromContext(r.Context())

	list, err := s.tasks.List(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, msgNoTasks)
			return
		}
		s.logger.Error(r.Context(), "list tasks failed", "error", err)
		writeFault(w, msgListTasksError, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *HTTPServer) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerIDFromContext(r.Context())
	taskID := chi.URLParam(r, "id")

	if err := s.tasks.Delete(r.Context(), ownerID, taskID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, msgDeleteNotFound)
			return
		}
		s.logger.Error(r.Context(), "delete task failed", "error", err)
		writeFault(w, msgDeleteTaskError, err)
		return
	}
	writeMessage(w, http.StatusOK, msgTaskDeleted)
}

func (s *HTTPServer) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerIDFromContext(r.Context())
	taskID := chi.URLParam(r, "id")

	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil || req.Completed == nil || taskID == "" {
		writeMessage(w, http.StatusBadRequest, msgInvalidUpdate)
		return
	}

	task, err := s.tasks.UpdateCompleted(r.Context(), ownerID, taskID, *req.Completed)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, msgUpdateNotFound)
			return
		}
		s.logger.Error(r.Context(), "update task failed", "error", err)
		writeFault(w, msgUpdateTaskError, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}
