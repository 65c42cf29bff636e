package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	msgUserCreated     = "User created successfully"
	msgEmailExists     = "Email already exists"
	msgCreateUserError = "Error creating user"
	msgSignedIn        = "Successfully signed in"
	msgInvalidLogin    = "Invalid email or password"
	msgSigninError     = "Server error during signin"
	msgNoToken         = "No token provided"
	msgInvalidToken    = "Invalid token"
	msgCreateTaskError = "Error creating todo"
	msgNoTasks         = "No todos found"
	msgListTasksError  = "Error fetching todos"
	msgTaskDeleted     = "Todo deleted successfully"
	msgDeleteNotFound  = "Todo not found or not authorized to delete"
	msgDeleteTaskError = "Error deleting todo"
	msgInvalidUpdate   = "Invalid input. Todo ID and completed status required"
	msgUpdateNotFound  = "Todo not found or not authorized to update"
	msgUpdateTaskError = "Error updating todo"
	msgInvalidBody     = "Invalid request body"
)

type messageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeFault writes a 500 carrying the underlying error text.
func writeFault(w http.ResponseWriter, msg string, err error) {
	writeJSON(w, http.StatusInternalServerError, messageResponse{Message: msg, Error: err.Error()})
}

// decodeJSON decodes the request body into v. An empty body leaves v
// untouched.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// decodeMessage describes a body decoding failure for the client.
func decodeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("Expected %s, received %s", typeErr.Type.String(), typeErr.Value)
	}
	return msgInvalidBody
}

// validationMessage returns a message for the first failed field rule.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Invalid email"
	case "min":
		return fmt.Sprintf("String must contain at least %s character(s)", fe.Param())
	default:
		return fmt.Sprintf("Invalid %s", strings.ToLower(fe.Field()))
	}
}
