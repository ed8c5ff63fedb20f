package services

import (
	"testing"

	"partner-management-api/models"

	"github.com/stretchr/testify/require"
)

func TestTransitionPartnershipStatus_AppendsHistory(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin)
	app := seedPartnership(t, db, models.PartnershipStatusNew)

	note := "looks promising"
	result, err := TransitionPartnershipStatus(db, app.ApplicationID, models.PartnershipStatusUnderReview, &note, admin.UserID)
	require.NoError(t, err)
	require.Equal(t, models.PartnershipStatusUnderReview, result.Application.Status)
	require.Len(t, result.History, 1)
	require.Equal(t, models.PartnershipStatusNew, result.History[0].PreviousStatus)
	require.Equal(t, models.PartnershipStatusUnderReview, result.History[0].NewStatus)
	require.Equal(t, admin.UserID, result.History[0].ChangedBy)
	require.NotNil(t, result.History[0].Note)
	require.Equal(t, note, *result.History[0].Note)
	require.Equal(t, admin.Email, result.History[0].ChangedByUser.Email)

	var stored models.PartnershipApplication
	require.NoError(t, db.First(&stored, "application_id = ?", app.ApplicationID).Error)
	require.Equal(t, models.PartnershipStatusUnderReview, stored.Status)
	require.NotNil(t, stored.UpdateAt)
}

func TestTransitionPartnershipStatus_SameStatusTwiceAppendsTwice(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin)
	app := seedPartnership(t, db, models.PartnershipStatusNew)

	_, err := TransitionPartnershipStatus(db, app.ApplicationID, models.PartnershipStatusApproved, nil, admin.UserID)
	require.NoError(t, err)
	result, err := TransitionPartnershipStatus(db, app.ApplicationID, models.PartnershipStatusApproved, nil, admin.UserID)
	require.NoError(t, err)

	require.Len(t, result.History, 2)
	// second row records APPROVED -> APPROVED
	require.Equal(t, models.PartnershipStatusApproved, result.History[0].PreviousStatus)
	require.Equal(t, models.PartnershipStatusApproved, result.History[0].NewStatus)

	var count int64
	require.NoError(t, db.Model(&models.PartnershipStatusHistory{}).
		Where("application_id = ?", app.ApplicationID).Count(&count).Error)
	require.Equal(t, int64(2), count)
}

func TestTransitionPartnershipStatus_HistoryBoundedNewestFirst(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin)
	app := seedPartnership(t, db, models.PartnershipStatusNew)

	sequence := []models.PartnershipStatus{
		models.PartnershipStatusUnderReview,
		models.PartnershipStatusApproved,
		models.PartnershipStatusOnboarding,
		models.PartnershipStatusRejected,
		models.PartnershipStatusNew,
		models.PartnershipStatusUnderReview,
	}

	var last *PartnershipTransition
	for _, status := range sequence {
		result, err := TransitionPartnershipStatus(db, app.ApplicationID, status, nil, admin.UserID)
		require.NoError(t, err)
		last = result
	}

	// six transitions happened but only the five most recent come back
	require.Len(t, last.History, 5)
	require.Equal(t, models.PartnershipStatusUnderReview, last.History[0].NewStatus)
	for i := 1; i < len(last.History); i++ {
		require.GreaterOrEqual(t, last.History[i-1].HistoryID, last.History[i].HistoryID)
	}

	var count int64
	require.NoError(t, db.Model(&models.PartnershipStatusHistory{}).
		Where("application_id = ?", app.ApplicationID).Count(&count).Error)
	require.Equal(t, int64(6), count)
}

func TestTransitionPartnershipStatus_Errors(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin)
	app := seedPartnership(t, db, models.PartnershipStatusNew)

	_, err := TransitionPartnershipStatus(db, app.ApplicationID, "SHIPPED", nil, admin.UserID)
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = TransitionPartnershipStatus(db, "missing-id", models.PartnershipStatusApproved, nil, admin.UserID)
	require.ErrorIs(t, err, ErrApplicationNotFound)

	_, err = TransitionPartnershipStatus(db, app.ApplicationID, models.PartnershipStatusApproved, nil, "ghost-user")
	require.ErrorIs(t, err, ErrActingUserNotFound)

	// nothing above may have written history
	var count int64
	require.NoError(t, db.Model(&models.PartnershipStatusHistory{}).Count(&count).Error)
	require.Equal(t, int64(0), count)

	var stored models.PartnershipApplication
	require.NoError(t, db.First(&stored, "application_id = ?", app.ApplicationID).Error)
	require.Equal(t, models.PartnershipStatusNew, stored.Status)
}

func TestTransitionRegistrationStatus_AppendsHistory(t *testing.T) {
	db := newTestDB(t)
	reviewer := seedUser(t, db, models.RoleReviewer)
	reg := seedRegistration(t, db, models.RegistrationStatusSubmitted)

	note := "missing visa documents"
	result, err := TransitionRegistrationStatus(db, reg.RegistrationID, models.RegistrationStatusMoreInfoNeeded, &note, reviewer.UserID)
	require.NoError(t, err)
	require.Equal(t, models.RegistrationStatusMoreInfoNeeded, result.Registration.Status)
	require.Len(t, result.History, 1)
	require.Equal(t, models.RegistrationStatusSubmitted, result.History[0].PreviousStatus)
	require.Equal(t, models.RegistrationStatusMoreInfoNeeded, result.History[0].NewStatus)
	require.Equal(t, reviewer.UserID, result.History[0].ChangedBy)
}

func TestTransitionRegistrationStatus_Errors(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin)
	reg := seedRegistration(t, db, models.RegistrationStatusDraft)

	_, err := TransitionRegistrationStatus(db, reg.RegistrationID, "NEW", nil, admin.UserID)
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = TransitionRegistrationStatus(db, "missing-id", models.RegistrationStatusApproved, nil, admin.UserID)
	require.ErrorIs(t, err, ErrRegistrationNotFound)

	_, err = TransitionRegistrationStatus(db, reg.RegistrationID, models.RegistrationStatusApproved, nil, "ghost-user")
	require.ErrorIs(t, err, ErrActingUserNotFound)
}
