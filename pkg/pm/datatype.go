package pm

import "fmt"

// StringCapacity is the fixed size of every string field in a blob,
// including the terminating NUL.
const StringCapacity = 260

// DataType tags the in-blob representation of a query element.
type DataType int32

const (
	DataTypeDouble DataType = iota
	DataTypeInt32
	DataTypeUint32
	DataTypeEnum
	DataTypeString
	DataTypeUint64
	DataTypeBool
	DataTypeVoid
)

// Size returns the number of blob bytes occupied by a value of this type.
func (d DataType) Size() uint64 {
	switch d {
	case DataTypeDouble, DataTypeUint64:
		return 8
	case DataTypeInt32, DataTypeUint32, DataTypeEnum:
		return 4
	case DataTypeString:
		return StringCapacity
	case DataTypeBool:
		return 1
	default:
		return 0
	}
}

// Alignment returns the natural alignment of the type.
func (d DataType) Alignment() uint64 {
	switch d {
	case DataTypeDouble, DataTypeUint64:
		return 8
	case DataTypeInt32, DataTypeUint32, DataTypeEnum:
		return 4
	default:
		return 1
	}
}

// Valid reports whether d is one of the known tags.
func (d DataType) Valid() bool {
	return d >= DataTypeDouble && d <= DataTypeVoid
}

func (d DataType) String() string {
	switch d {
	case DataTypeDouble:
		return "PM_DATA_TYPE_DOUBLE"
	case DataTypeInt32:
		return "PM_DATA_TYPE_INT32"
	case DataTypeUint32:
		return "PM_DATA_TYPE_UINT32"
	case DataTypeEnum:
		return "PM_DATA_TYPE_ENUM"
	case DataTypeString:
		return "PM_DATA_TYPE_STRING"
	case DataTypeUint64:
		return "PM_DATA_TYPE_UINT64"
	case DataTypeBool:
		return "PM_DATA_TYPE_BOOL"
	case DataTypeVoid:
		return "PM_DATA_TYPE_VOID"
	default:
		return fmt.Sprintf("PM_DATA_TYPE(%d)", int32(d))
	}
}

// MetricType classifies how a metric can be queried.
type MetricType int32

const (
	MetricTypeStatic MetricType = iota
	MetricTypeDynamic
	MetricTypeFrameEvent
	MetricTypeDynamicFrame
)

// IsDynamic reports whether the metric can be polled as a windowed statistic.
func (t MetricType) IsDynamic() bool {
	return t == MetricTypeDynamic || t == MetricTypeDynamicFrame
}

// IsFrameEvent reports whether the metric is carried by frame events.
func (t MetricType) IsFrameEvent() bool {
	return t == MetricTypeFrameEvent || t == MetricTypeDynamicFrame
}

func (t MetricType) String() string {
	switch t {
	case MetricTypeStatic:
		return "PM_METRIC_TYPE_STATIC"
	case MetricTypeDynamic:
		return "PM_METRIC_TYPE_DYNAMIC"
	case MetricTypeFrameEvent:
		return "PM_METRIC_TYPE_FRAME_EVENT"
	case MetricTypeDynamicFrame:
		return "PM_METRIC_TYPE_DYNAMIC_FRAME"
	default:
		return fmt.Sprintf("PM_METRIC_TYPE(%d)", int32(t))
	}
}
