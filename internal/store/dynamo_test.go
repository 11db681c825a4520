package store

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDynamoAPI is a mock implementation of DynamoAPI.
type MockDynamoAPI struct {
	mock.Mock
}

func (m *MockDynamoAPI) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.GetItemOutput), args.Error(1)
}

func (m *MockDynamoAPI) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.PutItemOutput), args.Error(1)
}

func (m *MockDynamoAPI) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.QueryOutput), args.Error(1)
}

func (m *MockDynamoAPI) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.ScanOutput), args.Error(1)
}

func (m *MockDynamoAPI) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.UpdateItemOutput), args.Error(1)
}

type record struct {
	ID   string `dynamodbav:"id"`
	Name string `dynamodbav:"name"`
}

func TestDynamoStore_Get_Success(t *testing.T) {
	ctx := context.Background()
	api := new(MockDynamoAPI)
	s := NewDynamoStore(api, zerolog.Nop())

	api.On("GetItem", ctx, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
		return aws.ToString(in.TableName) == "things" && in.Key["id"].(*types.AttributeValueMemberS).Value == "T1"
	})).Return(&dynamodb.GetItemOutput{
		Item: map[string]types.AttributeValue{
			"id":   &types.AttributeValueMemberS{Value: "T1"},
			"name": &types.AttributeValueMemberS{Value: "Thing One"},
		},
	}, nil)

	var out record
	err := s.Get(ctx, "things", "id", "T1", &out)

	require.NoError(t, err)
	assert.Equal(t, record{ID: "T1", Name: "Thing One"}, out)
	api.AssertExpectations(t)
}

func TestDynamoStore_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	api := new(MockDynamoAPI)
	s := NewDynamoStore(api, zerolog.Nop())

	api.On("GetItem", ctx, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

	var out record
	err := s.Get(ctx, "things", "id", "missing", &out)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDynamoStore_Get_BackendFailure(t *testing.T) {
	ctx := context.Background()
	api := new(MockDynamoAPI)
	s := NewDynamoStore(api, zerolog.Nop())

	api.On("GetItem", ctx, mock.Anything).Return(nil, errors.New("connection refused"))

	var out record
	err := s.Get(ctx, "things", "id", "T1", &out)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestDynamoStore_Put_BackendFailure(t *testing.T) {
	ctx := context.Background()
	api := new(MockDynamoAPI)
	s := NewDynamoStore(api, zerolog.Nop())

	api.On("PutItem", ctx, mock.Anything).Return(nil, errors.New("throughput exceeded"))

	err := s.Put(ctx, "things", record{ID: "T1", Name: "Thing One"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDynamoStore_QueryIndex_FollowsPages(t *testing.T) {
	ctx := context.Background()
	api := new(MockDynamoAPI)
	s := NewDynamoStore(api, zerolog.Nop())

	page1 := &dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{
			{"id": &types.AttributeValueMemberS{Value: "T1"}, "name": &types.AttributeValueMemberS{Value: "Thing One"}},
		},
		LastEvaluatedKey: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: "T1"},
		},
	}
	page2 := &dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{
			{"id": &types.AttributeValueMemberS{Value: "T2"}, "name": &types.AttributeValueMemberS{Value: "Thing Two"}},
		},
	}

	api.On("Query", ctx, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return in.ExclusiveStartKey == nil
	})).Return(page1, nil).Once()
	api.On("Query", ctx, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return in.ExclusiveStartKey != nil
	})).Return(page2, nil).Once()

	var out []record
	err := s.QueryIndex(ctx, "things", "NameIndex", "name", "whatever", &out)

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "T1", out[0].ID)
	assert.Equal(t, "T2", out[1].ID)
	api.AssertExpectations(t)
}

func TestDynamoStore_Scan_Empty(t *testing.T) {
	ctx := context.Background()
	api := new(MockDynamoAPI)
	s := NewDynamoStore(api, zerolog.Nop())

	api.On("Scan", ctx, mock.Anything).Return(&dynamodb.ScanOutput{}, nil)

	var out []record
	err := s.Scan(ctx, "things", &out)

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDynamoStore_UpdateFields_NotFound(t *testing.T) {
	ctx := context.Background()
	api := new(MockDynamoAPI)
	s := NewDynamoStore(api, zerolog.Nop())

	api.On("UpdateItem", ctx, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

	err := s.UpdateFields(ctx, "things", "id", "missing", map[string]any{"name": "Renamed"}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDynamoStore_UpdateFields_ReturnsUpdatedRecord(t *testing.T) {
	ctx := context.Background()
	api := new(MockDynamoAPI)
	s := NewDynamoStore(api, zerolog.Nop())

	api.On("UpdateItem", ctx, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
		return in.ConditionExpression != nil && in.ReturnValues == types.ReturnValueAllNew
	})).Return(&dynamodb.UpdateItemOutput{
		Attributes: map[string]types.AttributeValue{
			"id":   &types.AttributeValueMemberS{Value: "T1"},
			"name": &types.AttributeValueMemberS{Value: "Renamed"},
		},
	}, nil)

	var out record
	err := s.UpdateFields(ctx, "things", "id", "T1", map[string]any{"name": "Renamed"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "Renamed", out.Name)
	api.AssertExpectations(t)
}
