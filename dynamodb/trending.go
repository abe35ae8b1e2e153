package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"gomovies/trending"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TrendingRepository keeps one item per search term, keyed by searchterm.
type TrendingRepository struct {
	client *dynamodb.Client
	table  string
}

type trendingItem struct {
	SearchTerm string `dynamodbav:"searchterm"`
	MovieID    int    `dynamodbav:"movie_id"`
	Title      string `dynamodbav:"title"`
	PosterURL  string `dynamodbav:"poster_url"`
	Count      int    `dynamodbav:"count"`
}

func NewTrendingRepository(client *dynamodb.Client, table string) *TrendingRepository {
	return &TrendingRepository{
		client: client,
		table:  table,
	}
}

// Increment creates or bumps the term's item with a single UpdateItem. ADD
// starts a missing count at zero, and if_not_exists keeps the first movie.
func (r *TrendingRepository) Increment(ctx context.Context, entry trending.Movie) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: &r.table,
		Key: map[string]types.AttributeValue{
			"searchterm": &types.AttributeValueMemberS{Value: entry.SearchTerm},
		},
		UpdateExpression: aws.String(
			"SET movie_id = if_not_exists(movie_id, :movie_id), " +
				"#title = if_not_exists(#title, :title), " +
				"poster_url = if_not_exists(poster_url, :poster_url) " +
				"ADD #count :one",
		),
		ExpressionAttributeNames: map[string]string{
			"#count": "count",
			"#title": "title",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":movie_id":   &types.AttributeValueMemberN{Value: strconv.Itoa(entry.MovieID)},
			":title":      &types.AttributeValueMemberS{Value: entry.Title},
			":poster_url": &types.AttributeValueMemberS{Value: entry.PosterURL},
			":one":        &types.AttributeValueMemberN{Value: "1"},
		},
	})
	if err != nil {
		return fmt.Errorf("dynamodb: increment search count: %w", err)
	}

	return nil
}

// Top scans the table and ranks in memory. The table holds one item per
// distinct search term.
func (r *TrendingRepository) Top(ctx context.Context, limit int) ([]trending.Movie, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}

	var items []trendingItem
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: &r.table,
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: scan trending: %w", err)
		}

		var page []trendingItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("dynamodb: unmarshal trending: %w", err)
		}
		items = append(items, page...)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].SearchTerm < items[j].SearchTerm
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	movies := make([]trending.Movie, len(items))
	for i, item := range items {
		movies[i] = trending.Movie(item)
	}
	return movies, nil
}
