package titantrigger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/titanbridge/lib/mycontext"
	"github.com/MarcGrol/titanbridge/lib/myerrors"
	"github.com/MarcGrol/titanbridge/lib/myhttp"
	"github.com/MarcGrol/titanbridge/lib/mylog"
	"github.com/MarcGrol/titanbridge/lib/mypublisher"
	"github.com/MarcGrol/titanbridge/lib/mystore"
	"github.com/MarcGrol/titanbridge/lib/mytime"
	"github.com/MarcGrol/titanbridge/lib/myuuid"
	"github.com/MarcGrol/titanbridge/services/titanevents"
)

type webService struct {
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(store mystore.Store[HookConfig], publisher mypublisher.Publisher, nower mytime.Nower, uuider myuuid.UUIDer) *webService {
	logger := mylog.New("titantrigger")

	return &webService{
		logger:  logger,
		service: newService(store, publisher, nower, uuider, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/hook", s.createHookPage()).Methods("POST")
	router.HandleFunc("/hook", s.listHooksPage()).Methods("GET")
	router.HandleFunc("/hook/{hookUID}", s.getHookPage()).Methods("GET")
	router.HandleFunc("/hook/{hookUID}", s.deleteHookPage()).Methods("DELETE")
	router.HandleFunc("/webhook/{hookUID}", s.webhookPage()).Methods("POST")

	return s.Subscribe(c)
}

func (s *webService) Subscribe(c context.Context) error {
	err := s.service.publisher.CreateTopic(c, titanevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", titanevents.TopicName, err)
	}

	return nil
}

func (s *webService) createHookPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		err := r.ParseForm()
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}
		includeRawData, _ := strconv.ParseBool(r.Form.Get("includeRawData"))

		hook, err := s.service.createHook(c, r.Form.Get("event"), includeRawData)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, hook)
	}
}

func (s *webService) listHooksPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		hooks, err := s.service.listHooks(c)
		if err != nil {
			responseWriter.WriteError(c, w, 3, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, hooks)
	}
}

func (s *webService) getHookPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		hook, err := s.service.getHook(c, mux.Vars(r)["hookUID"])
		if err != nil {
			responseWriter.WriteError(c, w, 4, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, hook)
	}
}

func (s *webService) deleteHookPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		err := s.service.deleteHook(c, mux.Vars(r)["hookUID"])
		if err != nil {
			responseWriter.WriteError(c, w, 5, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully removed hook",
		})
	}
}

func (s *webService) webhookPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		body := map[string]any{}
		err := json.NewDecoder(r.Body).Decode(&body)
		if err != nil {
			responseWriter.WriteError(c, w, 6, myerrors.NewInvalidInputError(fmt.Errorf("error parsing webhook body: %s", err)))
			return
		}

		normalized, err := s.service.handleWebhook(c, mux.Vars(r)["hookUID"], body, r.Header)
		if err != nil {
			responseWriter.WriteError(c, w, 7, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, normalized)
	}
}
