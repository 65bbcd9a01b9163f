package titanops

import (
	"context"
	"fmt"

	"github.com/MarcGrol/titanbridge/lib/myerrors"
	"github.com/MarcGrol/titanbridge/lib/mylog"
	"github.com/MarcGrol/titanbridge/lib/mypublisher"
	"github.com/MarcGrol/titanbridge/lib/myvault"
	"github.com/MarcGrol/titanbridge/services/titanapi"
	"github.com/MarcGrol/titanbridge/services/titanclient"
	"github.com/MarcGrol/titanbridge/services/titanevents"
)

type service struct {
	registry  registry
	vault     myvault.VaultReader
	client    titanclient.Client
	publisher mypublisher.Publisher
	logger    mylog.Logger
}

func newService(vault myvault.VaultReader, client titanclient.Client, publisher mypublisher.Publisher, logger mylog.Logger) *service {
	return &service{
		registry:  newRegistry(),
		vault:     vault,
		client:    client,
		publisher: publisher,
		logger:    logger,
	}
}

// BatchItem is one operation within a batch request.
type BatchItem struct {
	Resource  string          `json:"resource"`
	Operation string          `json:"operation"`
	Params    titanapi.Params `json:"params"`
}

// BatchResult carries the outcome of one batch item.
type BatchResult struct {
	Resource  string           `json:"resource"`
	Operation string           `json:"operation"`
	Items     []map[string]any `json:"items,omitempty"`
	Error     string           `json:"error,omitempty"`
}

func (s *service) execute(c context.Context, connectionUID string, resource string, operation string, params titanapi.Params) ([]map[string]any, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Execute %s.%s on connection %s", resource, operation, connectionUID)

	creds, exists, err := s.vault.Get(c, connectionUID)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error fetching credentials for connection %s: %s", connectionUID, err))
	}
	if !exists {
		return nil, myerrors.NewNotFoundError(fmt.Errorf("unknown connection %s", connectionUID))
	}

	handler, err := s.registry.resolve(resource, operation)
	if err != nil {
		return nil, err
	}

	items, err := handler(c, s.client, creds, params)

	publishErr := s.publisher.Publish(c, titanevents.TopicName, titanevents.OperationCompleted{
		ConnectionUID: connectionUID,
		Resource:      resource,
		Operation:     operation,
		Success:       err == nil,
		ItemCount:     len(items),
	})
	if publishErr != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Error publishing completion of %s.%s: %s", resource, operation, publishErr)
	}

	if err != nil {
		return nil, err
	}
	return items, nil
}

// executeBatch runs the items in order. With continueOnFail each failure is
// captured in that item's result, otherwise the first failure aborts the
// remainder.
func (s *service) executeBatch(c context.Context, connectionUID string, items []BatchItem, continueOnFail bool) ([]BatchResult, error) {
	results := []BatchResult{}

	for _, item := range items {
		result := BatchResult{
			Resource:  item.Resource,
			Operation: item.Operation,
		}

		resultItems, err := s.execute(c, connectionUID, item.Resource, item.Operation, item.Params)
		if err != nil {
			if !continueOnFail {
				return nil, err
			}
			result.Error = err.Error()
		} else {
			result.Items = resultItems
		}

		results = append(results, result)
	}

	return results, nil
}
