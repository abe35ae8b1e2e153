package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"gomovies/bookmark"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// BookmarkRepository stores bookmarks under partition key user_id and sort
// key movie_id, so a user holds at most one item per movie.
type BookmarkRepository struct {
	client *dynamodb.Client
	table  string
	now    func() time.Time
}

type bookmarkItem struct {
	UserID    string `dynamodbav:"user_id"`
	MovieID   int    `dynamodbav:"movie_id"`
	ID        string `dynamodbav:"id"`
	Title     string `dynamodbav:"title"`
	PosterURL string `dynamodbav:"poster_url"`
	CreatedAt string `dynamodbav:"created_at"`
}

func NewBookmarkRepository(client *dynamodb.Client, table string) *BookmarkRepository {
	return &BookmarkRepository{
		client: client,
		table:  table,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (r *BookmarkRepository) Exists(ctx context.Context, userID string, movieID int) (bool, error) {
	if err := validateTable(r.table); err != nil {
		return false, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:            &r.table,
		Key:                  bookmarkKey(userID, movieID),
		ProjectionExpression: aws.String("user_id"),
	})
	if err != nil {
		return false, fmt.Errorf("dynamodb: get bookmark: %w", err)
	}

	return len(out.Item) > 0, nil
}

// Add puts the item only when the key is free; a failed condition means the
// movie is already bookmarked and is not an error.
func (r *BookmarkRepository) Add(ctx context.Context, b bookmark.Bookmark) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	id := b.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := b.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now()
	}

	av, err := attributevalue.MarshalMap(bookmarkItem{
		UserID:    b.UserID,
		MovieID:   b.MovieID,
		ID:        id,
		Title:     b.Title,
		PosterURL: b.PosterURL,
		CreatedAt: createdAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("dynamodb: marshal bookmark: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &r.table,
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(user_id)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return nil
		}
		return fmt.Errorf("dynamodb: put bookmark: %w", err)
	}

	return nil
}

func (r *BookmarkRepository) Remove(ctx context.Context, userID string, movieID int) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &r.table,
		Key:       bookmarkKey(userID, movieID),
	})
	if err != nil {
		return fmt.Errorf("dynamodb: delete bookmark: %w", err)
	}

	return nil
}

// ListByUser queries the user's partition and orders by created_at, newest first.
func (r *BookmarkRepository) ListByUser(ctx context.Context, userID string) ([]bookmark.Bookmark, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}

	var bookmarks []bookmark.Bookmark
	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:              &r.table,
		KeyConditionExpression: aws.String("user_id = :user_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":user_id": &types.AttributeValueMemberS{Value: userID},
		},
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: query bookmarks: %w", err)
		}

		var items []bookmarkItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("dynamodb: unmarshal bookmarks: %w", err)
		}
		for _, item := range items {
			createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
			if err != nil {
				return nil, fmt.Errorf("dynamodb: parse created_at: %w", err)
			}
			bookmarks = append(bookmarks, bookmark.Bookmark{
				ID:        item.ID,
				UserID:    item.UserID,
				MovieID:   item.MovieID,
				Title:     item.Title,
				PosterURL: item.PosterURL,
				CreatedAt: createdAt,
			})
		}
	}

	sort.SliceStable(bookmarks, func(i, j int) bool {
		return bookmarks[i].CreatedAt.After(bookmarks[j].CreatedAt)
	})
	return bookmarks, nil
}

func bookmarkKey(userID string, movieID int) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"user_id":  &types.AttributeValueMemberS{Value: userID},
		"movie_id": &types.AttributeValueMemberN{Value: strconv.Itoa(movieID)},
	}
}
