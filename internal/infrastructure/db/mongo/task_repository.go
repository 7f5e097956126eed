package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

const (
	tasksCollection    = "tasks"
	commentsCollection = "comments"
)

// TaskRepository implements ports.TaskRepository using MongoDB.
type TaskRepository struct {
	tasks    *mongo.Collection
	comments *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) ports.TaskRepository {
	return &TaskRepository{
		tasks:    db.Collection(tasksCollection),
		comments: db.Collection(commentsCollection),
	}
}

type mongoTask struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Status      string             `bson:"status"`
	AssignedTo  string             `bson:"assigned_to"`
	ProjectID   string             `bson:"project_id,omitempty"`
	DueDate     time.Time          `bson:"due_date"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (mt *mongoTask) toDomain() *domain.Task {
	return &domain.Task{
		ID:          mt.ID.Hex(),
		Title:       mt.Title,
		Description: mt.Description,
		Status:      domain.TaskStatus(mt.Status),
		AssignedTo:  mt.AssignedTo,
		ProjectID:   mt.ProjectID,
		DueDate:     mt.DueDate.UTC(),
		CreatedAt:   unixToTime(mt.CreatedAt),
		UpdatedAt:   unixToTime(mt.UpdatedAt),
	}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	doc := mongoTask{
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		AssignedTo:  task.AssignedTo,
		ProjectID:   task.ProjectID,
		DueDate:     task.DueDate.UTC(),
		CreatedAt:   task.CreatedAt.Unix(),
		UpdatedAt:   task.UpdatedAt.Unix(),
	}

	res, err := r.tasks.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	created := *task
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}

	var mt mongoTask
	if err := r.tasks.FindOne(ctx, bson.M{"_id": oid}).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *TaskRepository) InsertComment(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	doc := bson.M{
		"task_id":    comment.TaskID,
		"user_id":    comment.UserID,
		"text":       comment.Text,
		"created_at": comment.CreatedAt.Unix(),
	}

	res, err := r.comments.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	created := *comment
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// FindUncompletedWithAssignee joins every not-yet-completed task with its
// assignee's contact details via a $lookup on the users collection. The
// due-date sweep applies the 24-hour window itself.
func (r *TaskRepository) FindUncompletedWithAssignee(ctx context.Context) ([]domain.DueTask, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": bson.M{"$ne": string(domain.TaskStatusCompleted)}}}},
		{{Key: "$addFields", Value: bson.M{
			"assignee_oid": bson.M{"$toObjectId": "$assigned_to"},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "assignee_oid",
			"foreignField": "_id",
			"as":           "assignee",
		}}},
		{{Key: "$unwind", Value: "$assignee"}},
		{{Key: "$project", Value: bson.M{
			"title":    1,
			"due_date": 1,
			"email":    "$assignee.email",
			"username": "$assignee.username",
		}}},
	}

	cur, err := r.tasks.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate uncompleted tasks: %w", err)
	}
	defer cur.Close(ctx)

	var rows []domain.DueTask
	for cur.Next(ctx) {
		var row struct {
			Title    string    `bson:"title"`
			DueDate  time.Time `bson:"due_date"`
			Email    string    `bson:"email"`
			Username string    `bson:"username"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode due task: %w", err)
		}
		rows = append(rows, domain.DueTask{
			Email:    row.Email,
			Username: row.Username,
			Title:    row.Title,
			DueDate:  row.DueDate.UTC(),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate due tasks: %w", err)
	}
	return rows, nil
}
