package pm

// UniversalDevice is the device id of metrics not tied to any adapter.
const UniversalDevice uint32 = 0

// QueryHandle identifies a query registered with a provider. Zero is empty.
type QueryHandle uint64

// QueryElement is the request/response descriptor exchanged with a
// provider when registering a query. Field order matches the provider ABI;
// DataOffset and DataSize are filled in at registration.
type QueryElement struct {
	Metric     Metric
	Stat       Stat
	DeviceID   uint32
	ArrayIndex uint32
	DataOffset uint64
	DataSize   uint64
}
