package main

import (
	"fmt"
	"os"

	"lia/internal/backend"
	"lia/internal/browser"
	"lia/internal/config"
	"lia/internal/convo"
	"lia/internal/dispatch"
	"lia/internal/logging"
	"lia/internal/search"
	"lia/internal/settings"
	"lia/internal/speech"
	"lia/internal/tools"
	"lia/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	log := logging.New()
	defer func() { _ = log.Sync() }()

	st := settings.Open(settings.DefaultPath())

	var (
		svc     backend.Service
		session backend.Session
		local   *backend.LocalService
	)
	if cfg.RemoteMode() {
		svc = backend.NewClient(cfg.BackendURL, cfg.BackendToken, log)
		if cfg.BackendToken != "" {
			session = backend.Session{Principal: cfg.BackendToken}
		}
	} else {
		local, err = backend.OpenLocalService(cfg.ResolveDataDir())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		svc = local
		session = backend.Session{Principal: "local"}
	}

	store := convo.NewStore(svc, session, log)
	executor := tools.NewExecutor(search.NewClient(log), browser.Open, log)
	orchestrator := dispatch.NewOrchestrator(store, executor, log)

	var recognizerEngine speech.RecognizerEngine
	if engine := speech.NewExecRecognizer(cfg.RecognizerCmd); engine != nil {
		recognizerEngine = engine
	}
	var synthesizerEngine speech.SynthesizerEngine
	if engine := speech.NewEspeakSynthesizer(); engine != nil {
		synthesizerEngine = engine
	}

	recognizer := speech.NewRecognizer(recognizerEngine, st.Get().RecognitionLanguage, log)
	synthesizer := speech.NewSynthesizer(synthesizerEngine, st, log)

	p := ui.NewProgram(ui.Deps{
		Store:        store,
		Orchestrator: orchestrator,
		Service:      svc,
		Session:      session,
		Settings:     st,
		Recognizer:   recognizer,
		Synthesizer:  synthesizer,
		Log:          log,
	})
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	synthesizer.Stop()
	if local != nil {
		_ = local.Close()
	}
}
