package store

import (
	"context"
	"testing"
	"time"

	"github.com/DevSlashRichie/coinme/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func samplePaymentUpdate() domain.LoanPaymentUpdate {
	at := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
	return domain.LoanPaymentUpdate{
		RemainingBalance: 11054,
		Status:           domain.LoanActive,
		NextPaymentDue:   at.AddDate(0, 1, 0),
		Entry:            domain.PaymentEntry{Date: at, Amount: 1066, Type: domain.PaymentPrincipal},
	}
}

func TestLoanStoreInsertInitialisesHistory(t *testing.T) {
	coll := new(MockCollection)
	s := NewLoanStoreWithCollection(coll)
	id := primitive.NewObjectID()

	coll.On("InsertOne", mock.Anything, mock.MatchedBy(func(l domain.Loan) bool {
		return l.PaymentHistory != nil && len(l.PaymentHistory) == 0
	}), mock.Anything).Return(&mongo.InsertOneResult{InsertedID: id}, nil)

	loan := domain.Loan{Status: domain.LoanActive}
	require.NoError(t, s.Insert(context.Background(), &loan))
	assert.Equal(t, id, loan.ID)
	coll.AssertExpectations(t)
}

func TestLoanStoreFindByID(t *testing.T) {
	coll := new(MockCollection)
	s := NewLoanStoreWithCollection(coll)
	id := primitive.NewObjectID()

	coll.On("FindOne", mock.Anything, bson.M{"_id": id}, mock.Anything).
		Return(mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil))

	_, err := s.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), id.Hex())
}

func TestLoanStoreFindByBorrower(t *testing.T) {
	coll := new(MockCollection)
	s := NewLoanStoreWithCollection(coll)
	borrower := domain.Party{Kind: domain.PartyBusiness, ID: primitive.NewObjectID()}

	docs := []interface{}{
		domain.Loan{ID: primitive.NewObjectID(), Borrower: borrower, PrincipalAmount: 1000},
	}
	cursor, _ := mongo.NewCursorFromDocuments(docs, nil, nil)
	coll.On("Find", mock.Anything, bson.M{"borrower.id": borrower.ID, "borrower.type": domain.PartyBusiness}, mock.Anything).
		Return(cursor, nil)

	loans, err := s.FindByBorrower(context.Background(), borrower)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, borrower, loans[0].Borrower)
	coll.AssertExpectations(t)
}

func TestLoanStoreApplyPaymentFilter(t *testing.T) {
	coll := new(MockCollection)
	s := NewLoanStoreWithCollection(coll)
	id := primitive.NewObjectID()
	u := samplePaymentUpdate()

	expectedFilter := bson.M{"_id": id, "version": int64(3), "status": domain.LoanActive}
	coll.On("UpdateOne", mock.Anything, expectedFilter, mock.MatchedBy(func(update bson.M) bool {
		set, ok := update["$set"].(bson.M)
		if !ok || set["remainingBalance"] != u.RemainingBalance || set["status"] != u.Status {
			return false
		}
		push, ok := update["$push"].(bson.M)
		if !ok || push["paymentHistory"] != u.Entry {
			return false
		}
		inc, ok := update["$inc"].(bson.M)
		return ok && inc["version"] == 1
	}), mock.Anything).Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	require.NoError(t, s.ApplyPayment(context.Background(), id, 3, u))
	coll.AssertExpectations(t)
}

func TestLoanStoreApplyPaymentMongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("applied", func(mt *mtest.T) {
		s := NewLoanStoreWithCollection(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		err := s.ApplyPayment(context.Background(), primitive.NewObjectID(), 0, samplePaymentUpdate())
		assert.NoError(mt, err)
	})

	mt.Run("conflict", func(mt *mtest.T) {
		s := NewLoanStoreWithCollection(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := s.ApplyPayment(context.Background(), primitive.NewObjectID(), 0, samplePaymentUpdate())
		assert.ErrorIs(mt, err, domain.ErrConflict)
	})

	mt.Run("server error", func(mt *mtest.T) {
		s := NewLoanStoreWithCollection(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
		}))

		err := s.ApplyPayment(context.Background(), primitive.NewObjectID(), 0, samplePaymentUpdate())
		assert.ErrorIs(mt, err, domain.ErrPersistence)
	})
}

func TestLoanStoreSetStatus(t *testing.T) {
	coll := new(MockCollection)
	s := NewLoanStoreWithCollection(coll)
	id := primitive.NewObjectID()

	update := bson.M{"$set": bson.M{"status": domain.LoanDefaulted}, "$inc": bson.M{"version": 1}}
	coll.On("UpdateOne", mock.Anything, bson.M{"_id": id}, update, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 0}, nil)

	err := s.SetStatus(context.Background(), id, domain.LoanDefaulted)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	coll.AssertExpectations(t)
}
