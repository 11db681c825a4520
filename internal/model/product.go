package model

import (
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Product represents a protein bar in the catalogue. Products are read-only
// reference data as far as this service is concerned.
type Product struct {
	ID          string    `json:"id" dynamodbav:"id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Price       float64   `json:"price" dynamodbav:"price"`
	Currency    string    `json:"currency" dynamodbav:"currency"`
	InStock     StockFlag `json:"in_stock" dynamodbav:"in_stock"`
	Description string    `json:"description,omitempty" dynamodbav:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty" dynamodbav:"image_url,omitempty"`
}

// StockFlag is a boolean in the API but is persisted as the string
// "true"/"false": the attribute doubles as the InStockIndex hash key, and a
// DynamoDB index key must be a scalar string.
type StockFlag bool

// MarshalDynamoDBAttributeValue persists the flag as a string attribute.
func (f StockFlag) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberS{Value: strconv.FormatBool(bool(f))}, nil
}

// UnmarshalDynamoDBAttributeValue accepts both the string form written by
// this service and a native boolean written by external tooling.
func (f *StockFlag) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		b, err := strconv.ParseBool(v.Value)
		if err != nil {
			return err
		}
		*f = StockFlag(b)
		return nil
	case *types.AttributeValueMemberBOOL:
		*f = StockFlag(v.Value)
		return nil
	default:
		*f = false
		return nil
	}
}
