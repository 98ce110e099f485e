package repository

import (
	"context"

	"motofinance/internal/domain/entities"
	"motofinance/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// userItem is the union of every profile's attributes; only the ones of the
// table's role are populated.
type userItem struct {
	ID             string `dynamodbav:"id"`
	Name           string `dynamodbav:"name"`
	Email          string `dynamodbav:"email"`
	Active         bool   `dynamodbav:"active"`
	CreatedAt      string `dynamodbav:"created_at"`
	Area           string `dynamodbav:"area,omitempty"`
	StoreID        string `dynamodbav:"store_id,omitempty"`
	StoreName      string `dynamodbav:"store_name,omitempty"`
	City           string `dynamodbav:"city,omitempty"`
	DocumentNumber string `dynamodbav:"document_number,omitempty"`
	Phone          string `dynamodbav:"phone,omitempty"`
}

// UserDynamoRepository reads users from one table per role: admins, stores
// and clients, each optionally prefixed.
//
// Table requirements:
//   - PK: id (string)

type UserDynamoRepository struct {
	ddb         DynamoAPI
	tablePrefix string
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb DynamoAPI, tablePrefix string) *UserDynamoRepository {
	return &UserDynamoRepository{
		ddb:         ddb,
		tablePrefix: tableName(tablePrefix, "USERS_TABLE_PREFIX", ""),
	}
}

func (r *UserDynamoRepository) GetByID(ctx context.Context, role entities.Role, id string) (entities.User, error) {
	collection := entities.CollectionName(role)
	if collection == "" {
		return entities.User{}, nil
	}

	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tablePrefix + collection),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return entities.User{}, err
	}
	if len(out.Item) == 0 {
		return entities.User{}, nil
	}

	var it userItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(role, it), nil
}

func fromUserItem(role entities.Role, it userItem) entities.User {
	u := entities.User{
		ID:        it.ID,
		Name:      it.Name,
		Email:     it.Email,
		Active:    it.Active,
		CreatedAt: parseTime(it.CreatedAt),
	}
	switch role {
	case entities.RoleAdmin:
		u.Profile = entities.AdminProfile{Area: it.Area}
	case entities.RoleStore:
		u.Profile = entities.StoreProfile{StoreID: it.StoreID, StoreName: it.StoreName, City: it.City}
	case entities.RoleClient:
		u.Profile = entities.ClientProfile{DocumentNumber: it.DocumentNumber, Phone: it.Phone}
	}
	return u
}
