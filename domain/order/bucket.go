package order

// BucketName labels a classification partition.
type BucketName string

const (
	Military   BucketName = "MILITARY"
	Commercial BucketName = "COMMERCIAL"
)

// SheetName is the worksheet title the bucket renders to.
func (n BucketName) SheetName() string {
	return string(n)
}

// ReportSheets lists sheets in the order they are written and read back.
var ReportSheets = []BucketName{Military, Commercial}

// Bucket is one partition of a run's records together with the columns the
// source actually provided.
type Bucket struct {
	Name    BucketName
	Records []Record
	Columns ColumnSet
}

// NewBucket copies records into a new bucket.
func NewBucket(name BucketName, records []Record, cols ColumnSet) Bucket {
	out := make([]Record, len(records))
	copy(out, records)
	return Bucket{Name: name, Records: out, Columns: cols}
}

// Len returns the number of records.
func (b Bucket) Len() int {
	return len(b.Records)
}

// WithRecords returns a bucket with the same name and columns and new records.
func (b Bucket) WithRecords(records []Record) Bucket {
	return Bucket{Name: b.Name, Records: records, Columns: b.Columns}
}
