package productdb

import (
	"encoding/base64"
	"fmt"
	"strconv"

	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Product is a single catalog record as it crosses the transport boundary.
// The rating accumulators are float64 so that whole values serialize as
// JSON integers (0, not "0" or 0.0) and fractional values as floats (2.5).
type Product struct {
	ID          string  `json:"product_id"`
	Category    string  `json:"product_category"`
	Title       string  `json:"product_title"`
	SumRating   float64 `json:"sum_rating"`
	CountRating float64 `json:"count_rating"`
}

// ProductPage is one page of a table scan. LastEvaluatedKey is an opaque
// continuation token; it is empty on the final page.
type ProductPage struct {
	Items            []Product `json:"Items"`
	LastEvaluatedKey string    `json:"LastEvaluatedKey,omitempty"`
}

func productFromItem(item map[string]dynamodbtypes.AttributeValue) (*Product, error) {
	sumRating, err := numberValue(item, SumRatingAttr)
	if err != nil {
		return nil, err
	}

	countRating, err := numberValue(item, CountRatingAttr)
	if err != nil {
		return nil, err
	}

	return &Product{
		ID:          getStringValue(item[IDAttr]),
		Category:    getStringValue(item[CategoryAttr]),
		Title:       getStringValue(item[TitleAttr]),
		SumRating:   sumRating,
		CountRating: countRating,
	}, nil
}

// numberValue widens a DynamoDB number attribute from its decimal string
// form. Absent attributes read as zero.
func numberValue(item map[string]dynamodbtypes.AttributeValue, name string) (float64, error) {
	attr, ok := item[name]
	if !ok {
		return 0, nil
	}

	n, ok := attr.(*dynamodbtypes.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("attribute %s is not a number", name)
	}

	value, err := strconv.ParseFloat(n.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse numeric attribute %s: %w", name, err)
	}

	return value, nil
}

// getStringValue extracts the string value from a DynamoDB AttributeValue.
// It returns an empty string if the AttributeValue is not of type AttributeValueMemberS.
func getStringValue(attr dynamodbtypes.AttributeValue) string {
	if attrValue, ok := attr.(*dynamodbtypes.AttributeValueMemberS); ok {
		return attrValue.Value
	}

	return ""
}

// encodeStartKey folds a scan's LastEvaluatedKey into an opaque token. The
// table has a single string key, so the token is just the base64url-encoded
// product ID of the last item seen.
func encodeStartKey(key map[string]dynamodbtypes.AttributeValue) (string, error) {
	id := getStringValue(key[IDAttr])
	if id == "" {
		return "", fmt.Errorf("last evaluated key has no %s attribute", IDAttr)
	}

	return base64.URLEncoding.EncodeToString([]byte(id)), nil
}

func decodeStartKey(token string) (map[string]dynamodbtypes.AttributeValue, error) {
	id, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid continuation token: %w", err)
	}

	if len(id) == 0 {
		return nil, fmt.Errorf("invalid continuation token: empty key")
	}

	return map[string]dynamodbtypes.AttributeValue{
		IDAttr: &dynamodbtypes.AttributeValueMemberS{Value: string(id)},
	}, nil
}
