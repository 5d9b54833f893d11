package main

import (
	"context"
	"time"

	"github.com/shandysiswandi/turftime/internal/app"
)

// @title           TurfTime Auth API
// @version         1.0
// @description     TurfTime account registration, OTP verification, login and password reset.
// @contact.name    TurfTime Support
// @contact.email   support@turftime.com
// @server          http://localhost:8080
// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT.
func main() {
	application := app.New()
	wait := application.Start()
	<-wait
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx)
}
