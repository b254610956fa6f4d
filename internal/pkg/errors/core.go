package errors

import "errors"

// Core sentinel errors for the abstract failure kinds the core
// components report (spec §7). Wrap with fmt.Errorf("...: %w", ErrX) so
// callers can distinguish kinds via errors.Is while still carrying
// record-specific detail in the message.
var (
	// ErrConnection marks a transport-level failure talking to the
	// search backend.
	ErrConnection = errors.New("backend connection error")

	// ErrQueryRejected marks a query the backend rejected as malformed
	// (a protocol error, not a transport error).
	ErrQueryRejected = errors.New("backend rejected query")

	// ErrDecode marks a hit whose body failed to deserialize into its
	// claimed place variant.
	ErrDecode = errors.New("decode error")

	// ErrUnrecognizedPoiType marks a POI whose poi_type_id is absent
	// from the POI-type dictionary (spec §4.5 step 2).
	ErrUnrecognizedPoiType = errors.New("unrecognized poi type")

	// ErrNoAdminFound marks a POI for which neither its resolved address
	// nor the admin geofinder yielded any administrative region (spec
	// §4.5 step 4).
	ErrNoAdminFound = errors.New("no admin found")

	// ErrNoAddressFound marks a reverse-geocode search that returned no
	// candidate address (not itself fatal to POI enrichment; the POI
	// proceeds without an address per spec §4.5 step 3).
	ErrNoAddressFound = errors.New("no address found")

	// ErrConfigMerge marks a failure merging backend template
	// configuration fragments (spec §6 Template import surface).
	ErrConfigMerge = errors.New("config merge error")

	// ErrInvalidIO marks a failure reading a template or dataset file
	// from disk.
	ErrInvalidIO = errors.New("invalid io")
)
