package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDynamo struct {
	scanPages []*dynamodb.ScanOutput
	scanCalls int

	getOut *dynamodb.GetItemOutput
	putIn  *dynamodb.PutItemInput

	updateIn  *dynamodb.UpdateItemInput
	updateErr error

	deleteOut *dynamodb.DeleteItemOutput
	err       error
}

func (f *fakeDynamo) Scan(ctx context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := f.scanPages[f.scanCalls]
	f.scanCalls++
	return page, nil
}

func (f *fakeDynamo) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.getOut, nil
}

func (f *fakeDynamo) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.putIn = in
	return &dynamodb.PutItemOutput{}, f.err
}

func (f *fakeDynamo) UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updateIn = in
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.deleteOut, nil
}

func sv(v string) types.AttributeValue { return &types.AttributeValueMemberS{Value: v} }

func TestDynamoStore_UpdateIsParameterized(t *testing.T) {
	fake := &fakeDynamo{}
	store := NewDynamoStore(fake)

	u, err := BuildUpdate("v1", Record{"vendor_name": "New Name", "fax": "1 = 1; DROP"}, vendorDeny)
	require.NoError(t, err)
	require.NoError(t, store.Update(context.Background(), testTable, u))

	in := fake.updateIn
	require.NotNil(t, in)
	assert.Equal(t, testTable, *in.TableName)
	assert.Equal(t, sv("v1"), in.Key["id"])

	expr := *in.UpdateExpression
	assert.True(t, strings.HasPrefix(expr, "SET "), expr)
	assert.NotContains(t, expr, "vendor_name")
	assert.NotContains(t, expr, "DROP")
	assert.Contains(t, *in.ConditionExpression, "attribute_exists")

	var names []string
	for placeholder, name := range in.ExpressionAttributeNames {
		assert.True(t, strings.HasPrefix(placeholder, "#"))
		names = append(names, name)
	}
	assert.ElementsMatch(t, []string{"id", "fax", "vendor_name"}, names)

	var values []types.AttributeValue
	for placeholder, v := range in.ExpressionAttributeValues {
		assert.True(t, strings.HasPrefix(placeholder, ":"))
		values = append(values, v)
	}
	assert.ElementsMatch(t, []types.AttributeValue{sv("New Name"), sv("1 = 1; DROP")}, values)
}

func TestDynamoStore_UpdateMissingRecord(t *testing.T) {
	fake := &fakeDynamo{updateErr: &types.ConditionalCheckFailedException{}}
	store := NewDynamoStore(fake)

	err := store.Update(context.Background(), testTable, SetField("v9", "vendor_name", "x"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDynamoStore_UpdateDependencyError(t *testing.T) {
	boom := errors.New("throttled")
	store := NewDynamoStore(&fakeDynamo{updateErr: boom})

	err := store.Update(context.Background(), testTable, SetField("v1", "vendor_name", "x"))
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDynamoStore_Get(t *testing.T) {
	fake := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
		"id":    sv("a1"),
		"email": sv("a@x.com"),
	}}}
	store := NewDynamoStore(fake)

	r, err := store.Get(context.Background(), "nac_cms_admin", "a1")
	require.NoError(t, err)
	assert.Equal(t, Record{"id": "a1", "email": "a@x.com"}, r)

	fake.getOut = &dynamodb.GetItemOutput{}
	_, err = store.Get(context.Background(), "nac_cms_admin", "a2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDynamoStore_Put(t *testing.T) {
	fake := &fakeDynamo{}
	store := NewDynamoStore(fake)

	require.NoError(t, store.Put(context.Background(), "nac_cms_service", Record{"id": "s1", "service_name": "Polish"}))
	assert.Equal(t, sv("s1"), fake.putIn.Item["id"])
	assert.Equal(t, sv("Polish"), fake.putIn.Item["service_name"])
	assert.Nil(t, fake.putIn.ConditionExpression)

	assert.ErrorIs(t, store.Put(context.Background(), "nac_cms_service", Record{}), ErrMissingID)
}

func TestDynamoStore_ScanPages(t *testing.T) {
	fake := &fakeDynamo{scanPages: []*dynamodb.ScanOutput{
		{
			Items:            []map[string]types.AttributeValue{{"id": sv("a")}},
			LastEvaluatedKey: map[string]types.AttributeValue{"id": sv("a")},
		},
		{
			Items: []map[string]types.AttributeValue{{"id": sv("b")}},
		},
	}}
	store := NewDynamoStore(fake)

	records, err := store.Scan(context.Background(), testTable)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].ID())
	assert.Equal(t, "b", records[1].ID())
}

func TestDynamoStore_Delete(t *testing.T) {
	fake := &fakeDynamo{deleteOut: &dynamodb.DeleteItemOutput{
		Attributes: map[string]types.AttributeValue{"id": sv("e1")},
	}}
	store := NewDynamoStore(fake)

	old, err := store.Delete(context.Background(), "nac_cms_enquiry", "e1")
	require.NoError(t, err)
	assert.Equal(t, "e1", old.ID())

	fake.deleteOut = &dynamodb.DeleteItemOutput{}
	_, err = store.Delete(context.Background(), "nac_cms_enquiry", "e1")
	assert.ErrorIs(t, err, ErrNotFound)
}
