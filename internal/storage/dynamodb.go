package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/nac-jewellers-backup/vendorAPI/internal/config"
)

// DynamoDBAPI is the subset of the DynamoDB client used by DynamoStore.
type DynamoDBAPI interface {
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

type DynamoStore struct {
	client DynamoDBAPI
}

func NewDynamoStore(client DynamoDBAPI) *DynamoStore {
	return &DynamoStore{client: client}
}

// NewDynamoStoreFromConfig builds a client for cfg.AWSRegion. Static
// credentials and an endpoint override are applied when set, which is how
// DynamoDB Local is reached in development.
func NewDynamoStoreFromConfig(ctx context.Context, cfg config.StoreConfig) (*DynamoStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.AWSRegion)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
	return NewDynamoStore(client), nil
}

func keyOf(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		KeyField: &types.AttributeValueMemberS{Value: id},
	}
}

func (s *DynamoStore) Scan(ctx context.Context, table string) ([]Record, error) {
	var records []Record

	p := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{TableName: aws.String(table)})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		for _, item := range page.Items {
			r, err := unmarshalRecord(item)
			if err != nil {
				return nil, err
			}
			records = append(records, r)
		}
	}
	return records, nil
}

func (s *DynamoStore) Get(ctx context.Context, table, id string) (Record, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       keyOf(id),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", table, id, err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}
	return unmarshalRecord(out.Item)
}

func (s *DynamoStore) Put(ctx context.Context, table string, record Record) error {
	if record.ID() == "" {
		return ErrMissingID
	}

	item, err := attributevalue.MarshalMap(map[string]any(record))
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put %s/%s: %w", table, record.ID(), err)
	}
	return nil
}

// Update issues SET #n = :v for every assignment, guarded by
// attribute_exists(id) so that an edit never creates a record.
func (s *DynamoStore) Update(ctx context.Context, table string, u *UpdateInstruction) error {
	if len(u.Set) == 0 {
		return ErrNothingToUpdate
	}

	var update expression.UpdateBuilder
	for _, a := range u.Set {
		update = update.Set(expression.Name(a.Field), expression.Value(a.Value))
	}

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.AttributeExists(expression.Name(KeyField))).
		Build()
	if err != nil {
		return fmt.Errorf("build update expression: %w", err)
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       keyOf(u.ID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrNotFound
		}
		return fmt.Errorf("update %s/%s: %w", table, u.ID, err)
	}
	return nil
}

func (s *DynamoStore) Delete(ctx context.Context, table, id string) (Record, error) {
	out, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(table),
		Key:          keyOf(id),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return nil, fmt.Errorf("delete %s/%s: %w", table, id, err)
	}
	if len(out.Attributes) == 0 {
		return nil, ErrNotFound
	}
	return unmarshalRecord(out.Attributes)
}

func unmarshalRecord(item map[string]types.AttributeValue) (Record, error) {
	var m map[string]any
	if err := attributevalue.UnmarshalMap(item, &m); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return Record(m), nil
}
