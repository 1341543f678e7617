package routes

import (
	"github.com/danielgtaylor/huma/v2"
)

func RegisterAPI(api huma.API, launcher Launcher, rendererExecutable string) {
	RegisterHealth(api)
	RegisterRenders(api, launcher, rendererExecutable)
}
