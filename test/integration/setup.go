package integration

import (
	"context"
	"testing"
	"time"

	"github.com/manueltarouca/protein-bars-mcp-server/internal/model"
	"github.com/manueltarouca/protein-bars-mcp-server/internal/store"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	tcdynamodb "github.com/testcontainers/testcontainers-go/modules/dynamodb"
)

const (
	testProductsTable = "protein_products"
	testOrdersTable   = "protein_orders"
)

// TestStore represents a store backed by a dynamodb-local test container.
type TestStore struct {
	Container *tcdynamodb.DynamoDBContainer
	Client    *dynamodb.Client
	Store     store.Store
}

// SetupTestStore creates a dynamodb-local test container with both tables and
// their indexes, and a Store wired to it.
func SetupTestStore(t *testing.T) *TestStore {
	t.Helper()

	ctx := context.Background()

	container, err := tcdynamodb.Run(ctx, "amazon/dynamodb-local:2.2.1")
	testcontainers.CleanupContainer(t, container)
	if err != nil {
		t.Fatalf("failed to start dynamodb-local container: %v", err)
	}

	endpoint, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// dynamodb-local accepts any signature, but the SDK still needs
	// credentials to sign with.
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("eu-west-1"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("test", "test", ""),
		),
	)
	if err != nil {
		t.Fatalf("failed to load AWS configuration: %v", err)
	}

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		o.BaseEndpoint = aws.String("http://" + endpoint)
	})

	createTables(t, client)

	return &TestStore{
		Container: container,
		Client:    client,
		Store:     store.NewDynamoStore(client, zerolog.Nop()),
	}
}

// createTables creates the products and orders tables with their indexes.
func createTables(t *testing.T, client *dynamodb.Client) {
	t.Helper()

	ctx := context.Background()

	tables := []*dynamodb.CreateTableInput{
		{
			TableName:   aws.String(testProductsTable),
			BillingMode: types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
				{AttributeName: aws.String("in_stock"), AttributeType: types.ScalarAttributeTypeS},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
			},
			GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
				{
					IndexName: aws.String("InStockIndex"),
					KeySchema: []types.KeySchemaElement{
						{AttributeName: aws.String("in_stock"), KeyType: types.KeyTypeHash},
					},
					Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
				},
			},
		},
		{
			TableName:   aws.String(testOrdersTable),
			BillingMode: types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("order_id"), AttributeType: types.ScalarAttributeTypeS},
				{AttributeName: aws.String("status"), AttributeType: types.ScalarAttributeTypeS},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("order_id"), KeyType: types.KeyTypeHash},
			},
			GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
				{
					IndexName: aws.String("StatusIndex"),
					KeySchema: []types.KeySchemaElement{
						{AttributeName: aws.String("status"), KeyType: types.KeyTypeHash},
					},
					Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
				},
			},
		},
	}

	waiter := dynamodb.NewTableExistsWaiter(client)
	for _, input := range tables {
		if _, err := client.CreateTable(ctx, input); err != nil {
			t.Fatalf("failed to create table %s: %v", *input.TableName, err)
		}
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: input.TableName}, 30*time.Second); err != nil {
			t.Fatalf("table %s never became active: %v", *input.TableName, err)
		}
	}
}

// SeedProducts writes test catalogue data through the store.
func SeedProducts(t *testing.T, s store.Store) {
	t.Helper()

	ctx := context.Background()

	products := []model.Product{
		{ID: "P001", Name: "Test Bar 1", Price: 2.0, Currency: "EUR", InStock: true},
		{ID: "P002", Name: "Test Bar 2", Price: 2.0, Currency: "EUR", InStock: true},
		{ID: "P003", Name: "Test Bar 3", Price: 2.5, Currency: "EUR", InStock: true},
		{ID: "P004", Name: "Test Bar 4", Price: 2.5, Currency: "EUR", InStock: false},
		{ID: "P005", Name: "Test Bar 5", Price: 3.0, Currency: "EUR", InStock: false},
	}

	for _, p := range products {
		if err := s.Put(ctx, testProductsTable, p); err != nil {
			t.Fatalf("failed to seed product %s: %v", p.ID, err)
		}
	}
}

// CleanupOrders deletes every record from the orders table so each subtest
// starts from an empty order book.
func CleanupOrders(t *testing.T, client *dynamodb.Client) {
	t.Helper()

	ctx := context.Background()

	result, err := client.Scan(ctx, &dynamodb.ScanInput{
		TableName:            aws.String(testOrdersTable),
		ProjectionExpression: aws.String("order_id"),
	})
	if err != nil {
		t.Fatalf("failed to scan orders for cleanup: %v", err)
	}

	for _, item := range result.Items {
		_, err := client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(testOrdersTable),
			Key:       map[string]types.AttributeValue{"order_id": item["order_id"]},
		})
		if err != nil {
			t.Fatalf("failed to delete order during cleanup: %v", err)
		}
	}
}
