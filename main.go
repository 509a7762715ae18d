package main

import (
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/lobbychat/lobby-chat-api/api/handlers"
	"github.com/lobbychat/lobby-chat-api/api/scheduler"
	"github.com/lobbychat/lobby-chat-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil { //initialize account store, hub and router
		log.Fatal(err)
	}

	janitor := scheduler.NewScheduler(a.Hub.Moderation())
	janitor.Start()
	defer janitor.Stop()

	zap.S().Infow("lobby-chat-api is up and running",
		"port", a.Config.Port,
		"url", a.Config.BaseUrl,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", a.Config.Port), a.Router))
}
