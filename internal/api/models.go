package api

import (
	"net/http"
	"strings"
)

// RegisterForm is the input of POST /register.
type RegisterForm struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"required,max=72"`
}

// LoginForm is the input of POST /login.
type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// TaskForm is the input of POST /task/create.
type TaskForm struct {
	Title string `validate:"required,max=500"`
}

func bindRegisterForm(r *http.Request) RegisterForm {
	return RegisterForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
}

func bindLoginForm(r *http.Request) LoginForm {
	return LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
}

func bindTaskForm(r *http.Request) TaskForm {
	return TaskForm{Title: r.PostFormValue("title")}
}
