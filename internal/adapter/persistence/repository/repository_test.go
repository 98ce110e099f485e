package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"motofinance/internal/domain/entities"
	"motofinance/internal/domain/financing"
	"motofinance/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDynamo struct {
	getOut     *dynamodb.GetItemOutput
	updateOut  *dynamodb.UpdateItemOutput
	queryPages []*dynamodb.QueryOutput
	putErr     error
	updateErr  error
	txErr      error

	lastGet    *dynamodb.GetItemInput
	lastPut    *dynamodb.PutItemInput
	lastUpdate *dynamodb.UpdateItemInput
	lastTx     *dynamodb.TransactWriteItemsInput
	queries    []*dynamodb.QueryInput
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.lastGet = in
	if f.getOut == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return f.getOut, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.lastPut = in
	return &dynamodb.PutItemOutput{}, f.putErr
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.lastUpdate = in
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateOut == nil {
		return &dynamodb.UpdateItemOutput{}, nil
	}
	return f.updateOut, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queries = append(f.queries, in)
	i := len(f.queries) - 1
	if i >= len(f.queryPages) {
		return &dynamodb.QueryOutput{}, nil
	}
	return f.queryPages[i], nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.lastTx = in
	return &dynamodb.TransactWriteItemsOutput{}, f.txErr
}

func sampleProposal(t *testing.T) entities.Proposal {
	t.Helper()
	calc, err := financing.NewCalculator(financing.DefaultFeeSchedule())
	require.NoError(t, err)
	c, err := calc.Compute(4500)
	require.NoError(t, err)

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	p, err := entities.NewProposal("p-1", "store-1", "Honda", "CB 190R", 4500, now)
	require.NoError(t, err)
	p, err = p.StartReview(now.Add(time.Minute))
	require.NoError(t, err)
	p, err = p.AddNegotiation(entities.NegotiationMessage{
		ID:        "m-1",
		Message:   "can you do 4300?",
		Author:    entities.NegotiationAuthorFinancier,
		Timestamp: now.Add(2 * time.Minute),
	})
	require.NoError(t, err)
	return p.WithCalculation(c)
}

func itemOf(t *testing.T, v interface{}) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(v)
	require.NoError(t, err)
	return av
}

func TestProposalItemRoundTrip(t *testing.T) {
	p := sampleProposal(t)
	approved, err := p.Approve("admin-1", p.UpdatedAt.Add(time.Minute))
	require.NoError(t, err)

	it, err := toProposalItem(approved)
	require.NoError(t, err)
	assert.Equal(t, "4500", it.ProposedPrice)
	assert.Equal(t, "APPROVED", it.Status)
	assert.NotEmpty(t, it.EvaluatedAt)

	back, err := fromProposalItem(it)
	require.NoError(t, err)
	assert.Equal(t, approved.ID, back.ID)
	assert.Equal(t, approved.Status, back.Status)
	assert.Equal(t, approved.Version, back.Version)
	assert.True(t, approved.CreatedAt.Equal(back.CreatedAt))
	require.NotNil(t, back.EvaluatedAt)
	assert.True(t, approved.EvaluatedAt.Equal(*back.EvaluatedAt))
	require.Len(t, back.Negotiations, 1)
	assert.Equal(t, entities.NegotiationAuthorFinancier, back.Negotiations[0].Author)
	require.NotNil(t, back.Calculations)
	assert.Equal(t, approved.Calculations.TotalPrice, back.Calculations.TotalPrice)
	assert.Equal(t, approved.Calculations.DownPaymentOptions, back.Calculations.DownPaymentOptions)
}

func TestProposalItemRoundTrip_OptionalFieldsEmpty(t *testing.T) {
	p, err := entities.NewProposal("p-2", "store-1", "Yamaha", "FZ", 3000, time.Now())
	require.NoError(t, err)

	it, err := toProposalItem(p)
	require.NoError(t, err)
	assert.Empty(t, it.Calculations)
	assert.Empty(t, it.EvaluatedAt)

	back, err := fromProposalItem(it)
	require.NoError(t, err)
	assert.Nil(t, back.Calculations)
	assert.Nil(t, back.EvaluatedAt)
	assert.NotNil(t, back.Negotiations)
}

func TestProposalDynamoRepository_GetByID(t *testing.T) {
	p := sampleProposal(t)
	it, err := toProposalItem(p)
	require.NoError(t, err)

	fake := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: itemOf(t, it)}}
	repo := NewProposalDynamoRepository(fake, "proposals-test", "products-test")

	got, err := repo.GetByID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, "p-1", got.ID)
	assert.Equal(t, p.Version, got.Version)
	assert.Equal(t, "proposals-test", aws.ToString(fake.lastGet.TableName))
	assert.True(t, aws.ToBool(fake.lastGet.ConsistentRead))
}

func TestProposalDynamoRepository_GetByID_NotFound(t *testing.T) {
	repo := NewProposalDynamoRepository(&fakeDynamo{}, "", "")

	got, err := repo.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, got.ID)
}

func TestProposalDynamoRepository_Create(t *testing.T) {
	fake := &fakeDynamo{}
	repo := NewProposalDynamoRepository(fake, "", "")

	_, err := repo.Create(context.Background(), sampleProposal(t))
	require.NoError(t, err)
	assert.Equal(t, defaultProposalsTableName, aws.ToString(fake.lastPut.TableName))
	assert.Equal(t, "attribute_not_exists(#id)", aws.ToString(fake.lastPut.ConditionExpression))

	fake.putErr = &types.ConditionalCheckFailedException{}
	_, err = repo.Create(context.Background(), sampleProposal(t))
	assert.ErrorIs(t, err, interfaces.ErrConditionFailed)
}

func TestProposalDynamoRepository_UpdateIsVersionGuarded(t *testing.T) {
	p := sampleProposal(t)
	fake := &fakeDynamo{}
	repo := NewProposalDynamoRepository(fake, "", "")

	got, err := repo.Update(context.Background(), p, p.Version-1)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	in := fake.lastUpdate
	assert.Equal(t, "attribute_exists(#id) AND #version = :expected", aws.ToString(in.ConditionExpression))
	assert.Equal(t, &types.AttributeValueMemberN{Value: "2"}, in.ExpressionAttributeValues[":expected"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "3"}, in.ExpressionAttributeValues[":version"])
	assert.Contains(t, aws.ToString(in.UpdateExpression), "#negotiations = :negotiations")
	assert.Equal(t, types.ReturnValueAllNew, in.ReturnValues)

	fake.updateErr = &types.ConditionalCheckFailedException{}
	_, err = repo.Update(context.Background(), p, p.Version-1)
	assert.ErrorIs(t, err, interfaces.ErrConditionFailed)

	fake.updateErr = errors.New("throttled")
	_, err = repo.Update(context.Background(), p, p.Version-1)
	assert.EqualError(t, err, "throttled")
}

func TestProposalDynamoRepository_ApproveIsTransactional(t *testing.T) {
	p := sampleProposal(t)
	approved, err := p.Approve("admin-1", time.Now())
	require.NoError(t, err)
	product := entities.NewOfficialProduct("prod-1", approved)

	fake := &fakeDynamo{}
	repo := NewProposalDynamoRepository(fake, "", "")

	_, err = repo.Approve(context.Background(), approved, product, p.Version)
	require.NoError(t, err)
	require.Len(t, fake.lastTx.TransactItems, 2)
	upd := fake.lastTx.TransactItems[0].Update
	put := fake.lastTx.TransactItems[1].Put
	require.NotNil(t, upd)
	require.NotNil(t, put)
	assert.Contains(t, aws.ToString(upd.ConditionExpression), "#version = :expected")
	assert.Equal(t, defaultProductsTableName, aws.ToString(put.TableName))
	assert.Equal(t, &types.AttributeValueMemberS{Value: "p-1"}, put.Item["proposal_id"])

	fake.txErr = cancelled("ConditionalCheckFailed", "None")
	_, err = repo.Approve(context.Background(), approved, product, p.Version)
	assert.ErrorIs(t, err, interfaces.ErrConditionFailed)

	fake.txErr = cancelled("None", "ThrottlingError")
	_, err = repo.Approve(context.Background(), approved, product, p.Version)
	assert.NotErrorIs(t, err, interfaces.ErrConditionFailed)
	var tce *types.TransactionCanceledException
	assert.ErrorAs(t, err, &tce)
}

func cancelled(codes ...string) *types.TransactionCanceledException {
	reasons := make([]types.CancellationReason, 0, len(codes))
	for _, code := range codes {
		reasons = append(reasons, types.CancellationReason{Code: aws.String(code)})
	}
	return &types.TransactionCanceledException{Message: aws.String("Transaction cancelled"), CancellationReasons: reasons}
}

func TestConditionError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		lost bool
	}{
		{"conditional check", &types.ConditionalCheckFailedException{}, true},
		{"transaction condition", cancelled("None", "ConditionalCheckFailed"), true},
		{"transaction conflict", cancelled("TransactionConflict", "None"), true},
		{"throttled transaction", cancelled("None", "ThrottlingError"), false},
		{"invalid transaction", cancelled("ValidationError"), false},
		{"throughput exceeded", cancelled("ProvisionedThroughputExceeded", "None"), false},
		{"no reasons", &types.TransactionCanceledException{}, false},
		{"other error", errors.New("network"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := conditionError(tc.err)
			if tc.lost {
				assert.ErrorIs(t, got, interfaces.ErrConditionFailed)
				return
			}
			assert.Same(t, tc.err, got)
		})
	}
}

func TestProposalDynamoRepository_ListByStoreIDFollowsPages(t *testing.T) {
	p1 := sampleProposal(t)
	p2 := sampleProposal(t)
	p2.ID = "p-2"
	it1, err := toProposalItem(p1)
	require.NoError(t, err)
	it2, err := toProposalItem(p2)
	require.NoError(t, err)

	fake := &fakeDynamo{queryPages: []*dynamodb.QueryOutput{
		{
			Items:            []map[string]types.AttributeValue{itemOf(t, it1)},
			LastEvaluatedKey: map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "p-1"}},
		},
		{Items: []map[string]types.AttributeValue{itemOf(t, it2)}},
	}}
	repo := NewProposalDynamoRepository(fake, "", "")

	got, err := repo.ListByStoreID(context.Background(), "store-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p-2", got[1].ID)
	require.Len(t, fake.queries, 2)
	assert.Equal(t, proposalsStoreIDIndex, aws.ToString(fake.queries[0].IndexName))
	assert.Equal(t, "store_id", fake.queries[0].ExpressionAttributeNames["#k"])
}

func TestProposalDynamoRepository_ListByStatusEmpty(t *testing.T) {
	fake := &fakeDynamo{}
	repo := NewProposalDynamoRepository(fake, "", "")

	got, err := repo.ListByStatus(context.Background(), entities.ProposalStatusPending)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, proposalsStatusIndex, aws.ToString(fake.queries[0].IndexName))
}

func TestProposalDynamoRepository_GetOfficialProduct(t *testing.T) {
	p := sampleProposal(t)
	approved, err := p.Approve("admin-1", time.Now())
	require.NoError(t, err)
	it, err := toOfficialProductItem(entities.NewOfficialProduct("prod-1", approved))
	require.NoError(t, err)

	fake := &fakeDynamo{queryPages: []*dynamodb.QueryOutput{{Items: []map[string]types.AttributeValue{itemOf(t, it)}}}}
	repo := NewProposalDynamoRepository(fake, "", "")

	got, err := repo.GetOfficialProductByProposalID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, "prod-1", got.ID)
	assert.Equal(t, "admin-1", got.ApprovedBy)
	assert.Equal(t, float64(4500), got.Price)
	require.NotNil(t, got.Financing)
	assert.Equal(t, productsProposalIDIndex, aws.ToString(fake.queries[0].IndexName))
}

func TestDownPaymentItemRoundTrip(t *testing.T) {
	dp := entities.DownPayment{
		ID:           "mp-1",
		ProposalID:   "p-1",
		Percentage:   15,
		Amount:       730,
		Date:         time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		Status:       entities.PaymentStatusApproved,
		MPPayloadRaw: []byte(`{"id":1}`),
		MPPayload:    map[string]interface{}{"id": float64(1)},
	}

	back := fromDownPaymentItem(toDownPaymentItem(dp))
	assert.Equal(t, dp.ID, back.ID)
	assert.Equal(t, dp.Amount, back.Amount)
	assert.Equal(t, dp.Percentage, back.Percentage)
	assert.True(t, dp.Date.Equal(back.Date))
	assert.Equal(t, string(dp.MPPayloadRaw), string(back.MPPayloadRaw))
}

func TestDownPaymentDynamoRepository_ListByProposalID(t *testing.T) {
	it := toDownPaymentItem(entities.DownPayment{ID: "mp-1", ProposalID: "p-1", Amount: 730, Status: entities.PaymentStatusPending})
	fake := &fakeDynamo{queryPages: []*dynamodb.QueryOutput{{Items: []map[string]types.AttributeValue{itemOf(t, it)}}}}
	repo := NewDownPaymentDynamoRepository(fake, "dp-test")

	got, err := repo.ListByProposalID(context.Background(), "p-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, float64(730), got[0].Amount)
	assert.Equal(t, "dp-test", aws.ToString(fake.queries[0].TableName))
	assert.Equal(t, downPaymentsProposalIDIndex, aws.ToString(fake.queries[0].IndexName))
}

func TestUserDynamoRepository_ReadsRoleTable(t *testing.T) {
	item := userItem{ID: "u-1", Name: "Loja Centro", Email: "centro@example.com", Active: true, StoreID: "store-1", StoreName: "Centro"}
	fake := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: itemOf(t, item)}}
	repo := NewUserDynamoRepository(fake, "dev_")

	u, err := repo.GetByID(context.Background(), entities.RoleStore, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "dev_stores", aws.ToString(fake.lastGet.TableName))
	assert.Equal(t, entities.RoleStore, u.Role())
	assert.Equal(t, entities.StoreProfile{StoreID: "store-1", StoreName: "Centro"}, u.Profile)

	fake.lastGet = nil
	u, err = repo.GetByID(context.Background(), "guest", "u-1")
	require.NoError(t, err)
	assert.Empty(t, u.ID)
	assert.Nil(t, fake.lastGet)
}

func TestProposalMemoryRepository_VersionGuard(t *testing.T) {
	ctx := context.Background()
	repo := NewProposalMemoryRepository()
	p := sampleProposal(t)

	_, err := repo.Create(ctx, p)
	require.NoError(t, err)
	_, err = repo.Create(ctx, p)
	assert.ErrorIs(t, err, interfaces.ErrConditionFailed)

	deleted, err := p.Delete(time.Now())
	require.NoError(t, err)
	_, err = repo.Update(ctx, deleted, p.Version-1)
	assert.ErrorIs(t, err, interfaces.ErrConditionFailed)
	_, err = repo.Update(ctx, deleted, p.Version)
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.ProposalStatusDeleted, stored.Status)

	byStatus, err := repo.ListByStatus(ctx, entities.ProposalStatusDeleted)
	require.NoError(t, err)
	assert.Len(t, byStatus, 1)
	byStore, err := repo.ListByStoreID(ctx, "other-store")
	require.NoError(t, err)
	assert.Empty(t, byStore)
}

func TestProposalMemoryRepository_ApproveOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewProposalMemoryRepository()
	p := sampleProposal(t)
	_, err := repo.Create(ctx, p)
	require.NoError(t, err)

	approved, err := p.Approve("admin-1", time.Now())
	require.NoError(t, err)
	_, err = repo.Approve(ctx, approved, entities.NewOfficialProduct("prod-1", approved), p.Version)
	require.NoError(t, err)

	_, err = repo.Approve(ctx, approved, entities.NewOfficialProduct("prod-2", approved), p.Version)
	assert.ErrorIs(t, err, interfaces.ErrConditionFailed)

	prod, err := repo.GetOfficialProductByProposalID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "prod-1", prod.ID)
}

func TestProposalMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewProposalMemoryRepository()
	p := sampleProposal(t)
	_, err := repo.Create(ctx, p)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	got.Negotiations[0].Message = "changed"

	again, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "changed", again.Negotiations[0].Message)
}

func TestUserMemoryRepository(t *testing.T) {
	repo := NewUserMemoryRepository(entities.User{ID: "a-1", Active: true, Profile: entities.AdminProfile{Area: "credit"}})

	u, err := repo.GetByID(context.Background(), entities.RoleAdmin, "a-1")
	require.NoError(t, err)
	assert.Equal(t, "a-1", u.ID)

	u, err = repo.GetByID(context.Background(), entities.RoleStore, "a-1")
	require.NoError(t, err)
	assert.Empty(t, u.ID)
}
