package titanops

// Endpoint path templates. The "{tenant}" placeholder is substituted by the
// transport with the tenant-id of the connection used for the call.
const (
	customersPath = "crm/v2/tenant/{tenant}/customers"
	locationsPath = "crm/v2/tenant/{tenant}/locations"
	bookingsPath  = "crm/v2/tenant/{tenant}/booking-provider/bookings"
	leadsPath     = "crm/v2/tenant/{tenant}/leads"

	jobsPath         = "jpm/v2/tenant/{tenant}/jobs"
	appointmentsPath = "jpm/v2/tenant/{tenant}/appointments"

	invoicesPath  = "accounting/v2/tenant/{tenant}/invoices"
	paymentsPath  = "accounting/v2/tenant/{tenant}/payments"
	estimatesPath = "sales/v2/tenant/{tenant}/estimates"

	techniciansPath = "settings/v2/tenant/{tenant}/technicians"
	usersPath       = "settings/v2/tenant/{tenant}/users"

	dispatchPath = "dispatch/v2/tenant/{tenant}"
	zonesPath    = "dispatch/v2/tenant/{tenant}/zones"

	adjustmentsPath    = "inventory/v2/tenant/{tenant}/adjustments"
	purchaseOrdersPath = "inventory/v2/tenant/{tenant}/purchase-orders"
	vendorsPath        = "inventory/v2/tenant/{tenant}/vendors"
	warehousesPath     = "inventory/v2/tenant/{tenant}/warehouses"

	servicesPath  = "pricebook/v2/tenant/{tenant}/services"
	materialsPath = "pricebook/v2/tenant/{tenant}/materials"
	equipmentPath = "pricebook/v2/tenant/{tenant}/equipment"

	membershipsPath = "memberships/v2/tenant/{tenant}/memberships"
	campaignsPath   = "marketing/v2/tenant/{tenant}/campaigns"
	reportsPath     = "reporting/v2/tenant/{tenant}/reports"
)
