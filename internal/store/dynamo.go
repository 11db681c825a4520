package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
)

// DynamoAPI is the subset of the DynamoDB client used by the store. Tests
// substitute a mock.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// NewClient creates a DynamoDB client for the given region. A non-empty
// endpoint overrides the SDK endpoint (dynamodb-local).
func NewClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return client, nil
}

// dynamoStore implements Store against DynamoDB.
type dynamoStore struct {
	client DynamoAPI
	logger zerolog.Logger
}

// NewDynamoStore creates a DynamoDB-backed store. The client is a long-lived
// handle safe for concurrent use across in-flight requests.
func NewDynamoStore(client DynamoAPI, logger zerolog.Logger) Store {
	return &dynamoStore{
		client: client,
		logger: logger.With().Str("component", "store").Logger(),
	}
}

// Get loads the record with the given key into out.
func (s *dynamoStore) Get(ctx context.Context, table, keyAttr, keyValue string, out any) error {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			keyAttr: &types.AttributeValueMemberS{Value: keyValue},
		},
	})
	if err != nil {
		s.logger.Error().Err(err).Str("table", table).Str("key", keyValue).Msg("get item failed")
		return fmt.Errorf("%w: get %s from %s: %v", ErrUnavailable, keyValue, table, err)
	}

	if len(result.Item) == 0 {
		s.logger.Debug().Str("table", table).Str("key", keyValue).Msg("item not found")
		return fmt.Errorf("%w: %s in %s", ErrNotFound, keyValue, table)
	}

	if err := attributevalue.UnmarshalMap(result.Item, out); err != nil {
		return fmt.Errorf("failed to unmarshal item %s from %s: %w", keyValue, table, err)
	}

	return nil
}

// Put writes item as a full-overwrite upsert.
func (s *dynamoStore) Put(ctx context.Context, table string, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item for %s: %w", table, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      av,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("table", table).Msg("put item failed")
		return fmt.Errorf("%w: put to %s: %v", ErrUnavailable, table, err)
	}

	return nil
}

// QueryIndex loads every record whose indexed attribute equals value into out.
func (s *dynamoStore) QueryIndex(ctx context.Context, table, index, attr, value string, out any) error {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key(attr).Equal(expression.Value(value))).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build query expression for %s: %w", index, err)
	}

	var items []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue

	for {
		result, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(table),
			IndexName:                 aws.String(index),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			s.logger.Error().Err(err).
				Str("table", table).
				Str("index", index).
				Str("value", value).
				Msg("query failed")
			return fmt.Errorf("%w: query %s on %s: %v", ErrUnavailable, index, table, err)
		}

		items = append(items, result.Items...)
		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return fmt.Errorf("failed to unmarshal query results from %s: %w", table, err)
	}

	return nil
}

// Scan loads every record in the table into out.
func (s *dynamoStore) Scan(ctx context.Context, table string, out any) error {
	var items []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue

	for {
		result, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			s.logger.Error().Err(err).Str("table", table).Msg("scan failed")
			return fmt.Errorf("%w: scan %s: %v", ErrUnavailable, table, err)
		}

		items = append(items, result.Items...)
		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return fmt.Errorf("failed to unmarshal scan results from %s: %w", table, err)
	}

	return nil
}

// UpdateFields applies field assignments to an existing record, conditioned
// on the key existing so an update never creates a record.
func (s *dynamoStore) UpdateFields(ctx context.Context, table, keyAttr, keyValue string, fields map[string]any, out any) error {
	update := expression.UpdateBuilder{}
	for name, value := range fields {
		update = update.Set(expression.Name(name), expression.Value(value))
	}

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.AttributeExists(expression.Name(keyAttr))).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build update expression for %s: %w", table, err)
	}

	result, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			keyAttr: &types.AttributeValueMemberS{Value: keyValue},
		},
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			s.logger.Debug().Str("table", table).Str("key", keyValue).Msg("update target not found")
			return fmt.Errorf("%w: %s in %s", ErrNotFound, keyValue, table)
		}
		s.logger.Error().Err(err).Str("table", table).Str("key", keyValue).Msg("update item failed")
		return fmt.Errorf("%w: update %s in %s: %v", ErrUnavailable, keyValue, table, err)
	}

	if out != nil {
		if err := attributevalue.UnmarshalMap(result.Attributes, out); err != nil {
			return fmt.Errorf("failed to unmarshal updated item %s from %s: %w", keyValue, table, err)
		}
	}

	return nil
}
