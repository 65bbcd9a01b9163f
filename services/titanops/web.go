package titanops

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
	"github.com/MarcGrol/titanbridge/lib/myvault"
	"github.com/MarcGrol/titanbridge/services/titanapi"
	"github.com/MarcGrol/titanbridge/services/titanclient"
	"github.com/MarcGrol/titanbridge/services/titanevents"
)

type webService struct {
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(vault myvault.VaultReader, client titanclient.Client, publisher mypublisher.Publisher) *webService {
	logger := mylog.New("titanops")

	return &webService{
		logger:  logger,
		service: newService(vault, client, publisher, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/{connection}/batch", s.batchPage()).Methods("POST")
	router.HandleFunc("/api/{connection}/{resource}/{operation}", s.executePage()).Methods("POST")

	return s.Subscribe(c)
}

func (s *webService) Subscribe(c context.Context) error {
	err := s.service.publisher.CreateTopic(c, titanevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", titanevents.TopicName, err)
	}

	return nil
}

func (s *webService) executePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		params, err := titanapi.NewFromRequest(r)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		pathParams := mux.Vars(r)
		items, err := s.service.execute(c, pathParams["connection"], pathParams["resource"], pathParams["operation"], params)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, items)
	}
}

func (s *webService) batchPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		items := []BatchItem{}
		err := json.NewDecoder(r.Body).Decode(&items)
		if err != nil {
			responseWriter.WriteError(c, w, 3, myerrors.NewInvalidInputError(fmt.Errorf("error parsing batch body: %s", err)))
			return
		}
		continueOnFail, _ := strconv.ParseBool(r.URL.Query().Get("continueOnFail"))

		results, err := s.service.executeBatch(c, mux.Vars(r)["connection"], items, continueOnFail)
		if err != nil {
			responseWriter.WriteError(c, w, 4, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, results)
	}
}
