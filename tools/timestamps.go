package tools

import "time"

// TimestampFields lists the article record fields known to carry ISO-8601
// timestamps from the vendor API.
var TimestampFields = []string{
	"ingestion_datetime",
	"modification_datetime",
	"modification_date",
	"publication_date",
	"publication_datetime",
}

// DeliveryTimestampField is stamped with the current epoch second when a
// record is formatted.
const DeliveryTimestampField = "delivery_datetime"

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatTimestamps converts every known timestamp field present in record
// from an ISO-8601 string to epoch seconds, in place, and stamps the delivery
// time with the current epoch second. Fields that are absent or do not parse
// are left untouched.
func FormatTimestamps(record map[string]interface{}) {
	for _, field := range TimestampFields {
		raw, ok := record[field]
		if !ok {
			continue
		}
		value, ok := raw.(string)
		if !ok {
			continue
		}
		if ts, err := parseTimestamp(value); err == nil {
			record[field] = ts.Unix()
		}
	}

	// Stamped exactly once per record, after field conversion.
	record[DeliveryTimestampField] = time.Now().Unix()
}

func parseTimestamp(value string) (time.Time, error) {
	var err error
	for _, layout := range timestampLayouts {
		var ts time.Time
		if ts, err = time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, err
}
