package productdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/example/productstore/internal/schema"
)

const (
	// IDAttr is the partition key attribute name. There is no sort key.
	IDAttr = "product_id"

	// CategoryAttr is the attribute name for the product category.
	CategoryAttr = "product_category"

	// TitleAttr is the attribute name for the product title.
	TitleAttr = "product_title"

	// SumRatingAttr is the attribute name for the rating sum accumulator.
	SumRatingAttr = "sum_rating"

	// CountRatingAttr is the attribute name for the rating count accumulator.
	CountRatingAttr = "count_rating"

	// backupNamePrefix prefixes every backup name created by [Client.CreateBackup].
	backupNamePrefix = "product_backup_"

	// backupTimeLayout formats the backup timestamp to minute precision.
	backupTimeLayout = "200601021504"
)

// ErrNotFound is returned when an operation targets a product ID that does
// not exist in the table. Conditional update failures map to it as well.
var ErrNotFound = errors.New("product not found")

// BackupError wraps a store-side failure of the backup operation.
type BackupError struct {
	Err error
}

func (e *BackupError) Error() string {
	return fmt.Sprintf("failed to create backup: %v", e.Err)
}

func (e *BackupError) Unwrap() error {
	return e.Err
}

// BackupDetails is the metadata of a successfully created table backup.
// Field names follow the DynamoDB response shape on the wire.
type BackupDetails struct {
	BackupArn              string `json:"BackupArn"`
	BackupName             string `json:"BackupName"`
	BackupStatus           string `json:"BackupStatus"`
	BackupType             string `json:"BackupType"`
	BackupCreationDateTime string `json:"BackupCreationDateTime"`
}

// Client is a DynamoDB-backed product store. It exposes the five CRUD
// operations against the product table plus the table backup operation.
//
// Use [New] to create a Client, [Client.Connect] to initialize the
// underlying DynamoDB connection, and [Client.Init] to validate the table
// schema.
type Client struct {
	client    API
	tableName string
	awsCfg    *aws.Config
	opts      *Options
}

// New creates a new Client configured with the given AWS config, table name,
// and optional options. Call [Client.Connect] on the returned client before use.
func New(awsCfg *aws.Config, tableName string, opts ...Option) *Client {
	options := newOptions()

	for _, o := range opts {
		o(options)
	}

	return &Client{
		awsCfg:    awsCfg,
		tableName: tableName,
		opts:      options,
	}
}

// Connect initializes the DynamoDB client from the AWS config provided to [New].
// It must be called before any other Client methods, and must complete before
// the Client is used concurrently.
func (c *Client) Connect() error {
	if err := c.opts.validate(); err != nil {
		return fmt.Errorf("invalid DynamoDB options: %w", err)
	}

	// Use injected DynamoDB API if provided (useful for testing).
	if c.opts.dynamoDBAPI != nil {
		c.client = c.opts.dynamoDBAPI
	} else {
		c.client = dynamodb.NewFromConfig(*c.awsCfg)
	}

	return nil
}

// Init validates the DynamoDB table schema. It checks that the table
// exists, is active, and is keyed by a simple string partition key named
// product_id.
//
// Pass skipSchemaValidation true to skip all checks and return immediately,
// which is useful when table provisioning is managed separately.
func (c *Client) Init(ctx context.Context, skipSchemaValidation bool) error {
	if skipSchemaValidation {
		return nil
	}

	input := &dynamodb.DescribeTableInput{
		TableName: aws.String(c.tableName),
	}

	response, err := c.client.DescribeTable(ctx, input)
	if err != nil {
		var notFoundError *dynamodbtypes.ResourceNotFoundException
		if errors.As(err, &notFoundError) {
			return fmt.Errorf("table %s does not exist", c.tableName)
		}
		return fmt.Errorf("failed to describe table %s: %w", c.tableName, err)
	}

	if len(response.Table.KeySchema) != 1 {
		return fmt.Errorf("table %s has a composite primary key, expected a simple key", c.tableName)
	}

	if aws.ToString(response.Table.KeySchema[0].AttributeName) != IDAttr {
		return fmt.Errorf("table %s has partition key %s, expected %s", c.tableName, aws.ToString(response.Table.KeySchema[0].AttributeName), IDAttr)
	}

	if response.Table.TableStatus != dynamodbtypes.TableStatusActive {
		return fmt.Errorf("table %s is not active (status: %s)", c.tableName, response.Table.TableStatus)
	}

	return nil
}

// ListProducts returns up to limit products from a table scan, resuming
// from startToken if one is supplied. A limit of zero or less selects the
// default page size (100, configurable via [WithDefaultLimit]). Items are
// returned in store-native scan order; no ordering is guaranteed across
// pages. The returned page carries a continuation token when more items
// remain.
func (c *Client) ListProducts(ctx context.Context, limit int32, startToken string) (*ProductPage, error) {
	if limit <= 0 {
		limit = c.opts.defaultLimit
	}

	slog.Debug("scanning products", slog.Int("limit", int(limit)))

	input := &dynamodb.ScanInput{
		TableName: aws.String(c.tableName),
		Limit:     aws.Int32(limit),
	}

	if startToken != "" {
		startKey, err := decodeStartKey(startToken)
		if err != nil {
			return nil, err
		}

		input.ExclusiveStartKey = startKey
	}

	output, err := c.client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to scan DynamoDB table %s: %w", c.tableName, err)
	}

	page := &ProductPage{
		Items: make([]Product, 0, len(output.Items)),
	}

	for _, item := range output.Items {
		product, err := productFromItem(item)
		if err != nil {
			return nil, fmt.Errorf("failed to decode item from table %s: %w", c.tableName, err)
		}

		page.Items = append(page.Items, *product)
	}

	if output.LastEvaluatedKey != nil {
		token, err := encodeStartKey(output.LastEvaluatedKey)
		if err != nil {
			return nil, err
		}

		page.LastEvaluatedKey = token
	}

	return page, nil
}

// GetProduct retrieves a single product by ID. It returns [ErrNotFound]
// when the fetch comes back empty.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	if id == "" {
		return nil, errors.New("product ID cannot be empty")
	}

	slog.Debug("reading product", slog.String("product_id", id))

	input := &dynamodb.GetItemInput{
		TableName: aws.String(c.tableName),
		Key: map[string]dynamodbtypes.AttributeValue{
			IDAttr: &dynamodbtypes.AttributeValueMemberS{Value: id},
		},
	}

	output, err := c.client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get product from DynamoDB table %s: %w", c.tableName, err)
	}

	if len(output.Item) == 0 {
		return nil, ErrNotFound
	}

	product, err := productFromItem(output.Item)
	if err != nil {
		return nil, fmt.Errorf("failed to decode item from table %s: %w", c.tableName, err)
	}

	return product, nil
}

// AddProduct writes a new product with a freshly generated random ID and
// zeroed rating accumulators, and returns the new ID. The random partition
// key makes collisions with existing items negligible, so the write never
// overwrites an existing product.
func (c *Client) AddProduct(ctx context.Context, in *schema.ProductInput) (string, error) {
	if in == nil {
		return "", errors.New("product input cannot be nil")
	}

	id := uuid.NewString()

	slog.Debug("adding product", slog.String("product_id", id), slog.String("category", in.Category))

	input := &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item: map[string]dynamodbtypes.AttributeValue{
			IDAttr:          &dynamodbtypes.AttributeValueMemberS{Value: id},
			CategoryAttr:    &dynamodbtypes.AttributeValueMemberS{Value: in.Category},
			TitleAttr:       &dynamodbtypes.AttributeValueMemberS{Value: in.Title},
			SumRatingAttr:   &dynamodbtypes.AttributeValueMemberN{Value: "0"},
			CountRatingAttr: &dynamodbtypes.AttributeValueMemberN{Value: "0"},
		},
	}

	if _, err := c.client.PutItem(ctx, input); err != nil {
		return "", fmt.Errorf("failed to write product to DynamoDB table %s: %w", c.tableName, err)
	}

	return id, nil
}

// UpdateProduct replaces the category and title of an existing product.
// The write is conditional on the product already existing; updating an
// absent ID returns [ErrNotFound] and writes nothing.
func (c *Client) UpdateProduct(ctx context.Context, in *schema.UpdateInput) (string, error) {
	if in == nil {
		return "", errors.New("update input cannot be nil")
	}

	slog.Debug("updating product", slog.String("product_id", in.ID))

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(c.tableName),
		Key: map[string]dynamodbtypes.AttributeValue{
			IDAttr: &dynamodbtypes.AttributeValueMemberS{Value: in.ID},
		},
		UpdateExpression:    aws.String(fmt.Sprintf("SET %s = :category, %s = :title", CategoryAttr, TitleAttr)),
		ConditionExpression: aws.String(fmt.Sprintf("attribute_exists(%s)", IDAttr)),
		ExpressionAttributeValues: map[string]dynamodbtypes.AttributeValue{
			":category": &dynamodbtypes.AttributeValueMemberS{Value: in.Category},
			":title":    &dynamodbtypes.AttributeValueMemberS{Value: in.Title},
		},
		ReturnValues: dynamodbtypes.ReturnValueNone,
	}

	if _, err := c.client.UpdateItem(ctx, input); err != nil {
		var conditionFailed *dynamodbtypes.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return "", fmt.Errorf("product %s: %w", in.ID, ErrNotFound)
		}

		return "", fmt.Errorf("failed to update product in DynamoDB table %s: %w", c.tableName, err)
	}

	return in.ID, nil
}

// DeleteProduct removes the product with the given ID. It is idempotent;
// deleting an absent ID is not an error.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("product ID cannot be empty")
	}

	slog.Debug("deleting product", slog.String("product_id", id))

	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(c.tableName),
		Key: map[string]dynamodbtypes.AttributeValue{
			IDAttr: &dynamodbtypes.AttributeValueMemberS{Value: id},
		},
	}

	if _, err := c.client.DeleteItem(ctx, input); err != nil {
		return fmt.Errorf("failed to delete product from DynamoDB table %s: %w", c.tableName, err)
	}

	return nil
}

// CreateBackup invokes DynamoDB's backup operation against the configured
// table. The backup is named product_backup_<YYYYMMDDHHMM> from the current
// UTC time. Store-side failures are wrapped in [*BackupError]; the call is
// not retried.
func (c *Client) CreateBackup(ctx context.Context) (*BackupDetails, error) {
	backupName := backupNamePrefix + c.opts.clock().UTC().Format(backupTimeLayout)

	slog.Debug("creating backup", slog.String("backup_name", backupName))

	input := &dynamodb.CreateBackupInput{
		TableName:  aws.String(c.tableName),
		BackupName: aws.String(backupName),
	}

	output, err := c.client.CreateBackup(ctx, input)
	if err != nil {
		return nil, &BackupError{Err: err}
	}

	if output.BackupDetails == nil {
		return nil, &BackupError{Err: errors.New("backup response carries no details")}
	}

	details := output.BackupDetails

	slog.Info("backup created", slog.String("backup_arn", aws.ToString(details.BackupArn)))

	return &BackupDetails{
		BackupArn:              aws.ToString(details.BackupArn),
		BackupName:             aws.ToString(details.BackupName),
		BackupStatus:           string(details.BackupStatus),
		BackupType:             string(details.BackupType),
		BackupCreationDateTime: aws.ToTime(details.BackupCreationDateTime).UTC().Format(time.RFC3339),
	}, nil
}
