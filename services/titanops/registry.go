package titanops

import (
	"context"
	"fmt"

	"github.com/MarcGrol/titanbridge/lib/myerrors"
	"github.com/MarcGrol/titanbridge/lib/myvault"
	"github.com/MarcGrol/titanbridge/services/titanapi"
	"github.com/MarcGrol/titanbridge/services/titanclient"
)

type opKey struct {
	Resource  string
	Operation string
}

type handlerFunc func(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error)

type registry map[opKey]handlerFunc

// newRegistry resolves every (resource, operation) pair to its handler once,
// at construction time.
func newRegistry() registry {
	r := registry{}

	registerCustomerOps(r)
	registerLocationOps(r)
	registerJobOps(r)
	registerAppointmentOps(r)
	registerBookingOps(r)
	registerLeadOps(r)
	registerInvoiceOps(r)
	registerPaymentOps(r)
	registerEstimateOps(r)
	registerTechnicianOps(r)
	registerDispatchOps(r)
	registerInventoryOps(r)
	registerPricebookOps(r)
	registerMembershipOps(r)
	registerCampaignOps(r)
	registerReportOps(r)
	registerUserOps(r)

	return r
}

func (r registry) resolve(resource string, operation string) (handlerFunc, error) {
	handler, found := r[opKey{Resource: resource, Operation: operation}]
	if !found {
		return nil, myerrors.NewNotFoundError(fmt.Errorf("unknown operation %s on resource %s", operation, resource))
	}
	return handler, nil
}
