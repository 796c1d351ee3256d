package main

import (
	"FacultyManager/internal/bootstrap"
	pkg "FacultyManager/pkg/routes"

	"go.uber.org/fx"
)

func main() {
	bootstrap.Loadenv()
	app := fx.New(
		fx.WithLogger(bootstrap.NewFxLogger),
		pkg.EchoModules,
	)

	app.Run()
}
