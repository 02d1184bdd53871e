package main

import (
	"net/http"

	"go.uber.org/fx"

	"github.com/seicast/seicast/internal/web"
)

func main() {
	fx.New(
		web.Dependencies(),
		fx.Invoke(func(*http.Server) {}),
	).Run()
}
