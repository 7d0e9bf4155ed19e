// Package reviewgen builds the review graph for an assignment: the full
// directed pairing set over every active group in the assignment's
// workspace, written as pending review rows.
package reviewgen

import (
	"context"

	assignmentstore "github.com/dalemusser/peerhub/internal/app/store/assignments"
	"github.com/dalemusser/peerhub/internal/app/store/queries/groupmembers"
	reviewstore "github.com/dalemusser/peerhub/internal/app/store/reviews"
	workspacestore "github.com/dalemusser/peerhub/internal/app/store/workspaces"
	"github.com/dalemusser/peerhub/internal/app/system/apperr"
	"github.com/dalemusser/peerhub/internal/app/system/pairing"
	"github.com/dalemusser/peerhub/internal/app/system/txn"
	"github.com/dalemusser/peerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Generator expands group membership into pending review rows.
type Generator struct {
	db          *mongo.Database
	assignments *assignmentstore.Store
	workspaces  *workspacestore.Store
	reviews     *reviewstore.Store
	log         *zap.Logger
}

func New(db *mongo.Database, log *zap.Logger) *Generator {
	return &Generator{
		db:          db,
		assignments: assignmentstore.New(db),
		workspaces:  workspacestore.New(db),
		reviews:     reviewstore.New(db),
		log:         log,
	}
}

// Result reports what a generation run did.
type Result struct {
	Groups  int   `json:"groups"`
	Pairs   int   `json:"pairs"`
	Created int64 `json:"created"`
}

// GenerateFor builds and persists the review graph for an assignment.
//
// Each active group of size n contributes n·(n−1) directed pairs; groups
// of fewer than two members contribute nothing. The insert runs inside a
// transaction and is retried once on failure; a second failure surfaces as
// an internal error with no partial graph left behind. Re-running against
// an existing graph is a no-op (Created == 0): the unique pairing index
// swallows every duplicate row.
func (g *Generator) GenerateFor(ctx context.Context, assignmentID primitive.ObjectID) (Result, error) {
	a, err := g.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return Result{}, apperr.New(apperr.NotFound, "assignment not found")
		}
		return Result{}, apperr.Wrap(apperr.Internal, "load assignment", err)
	}

	// A vanished workspace must not read as "no groups, nothing to do".
	if _, err := g.workspaces.GetByID(ctx, a.WorkspaceID); err != nil {
		if err == mongo.ErrNoDocuments {
			return Result{}, apperr.New(apperr.NotFound, "workspace not found")
		}
		return Result{}, apperr.Wrap(apperr.Internal, "load workspace", err)
	}

	groups, err := groupmembers.ListGroupsWithMembers(ctx, g.db, a.WorkspaceID)
	if err != nil {
		return Result{}, apperr.Wrap(apperr.Internal, "resolve group membership", err)
	}

	var rows []models.Review
	res := Result{Groups: len(groups)}
	for _, grp := range groups {
		for _, p := range pairing.Expand(grp.MemberIDs) {
			rows = append(rows, models.Review{
				AssignmentID: a.ID,
				GroupID:      grp.GroupID,
				UserID:       p.Reviewer,
				TargetID:     p.Target,
			})
		}
	}
	res.Pairs = len(rows)
	if len(rows) == 0 {
		g.log.Info("review generation produced no pairs",
			zap.String("assignment_id", a.ID.Hex()),
			zap.Int("groups", res.Groups))
		return res, nil
	}

	created, err := g.insertWithRetry(ctx, rows)
	if err != nil {
		return Result{}, apperr.Wrap(apperr.Internal, "persist review graph", err)
	}
	res.Created = created

	g.log.Info("review graph generated",
		zap.String("assignment_id", a.ID.Hex()),
		zap.Int("groups", res.Groups),
		zap.Int("pairs", res.Pairs),
		zap.Int64("created", created))
	return res, nil
}

// insertWithRetry writes the rows transactionally, retrying once on a
// transient failure. The bulk write is duplicate-tolerant, so the retry is
// safe even if the first attempt partially landed on a deployment without
// transactions.
func (g *Generator) insertWithRetry(ctx context.Context, rows []models.Review) (int64, error) {
	var created int64
	attempt := func() error {
		return txn.Run(ctx, g.db, g.log, func(ctx context.Context) error {
			n, err := g.reviews.InsertPending(ctx, rows)
			if err != nil {
				return err
			}
			created = n
			return nil
		})
	}

	err := attempt()
	if err != nil {
		g.log.Warn("review graph insert failed, retrying once", zap.Error(err))
		err = attempt()
	}
	if err != nil {
		return 0, err
	}
	return created, nil
}
