package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOfferStatusFor(t *testing.T) {
	s := &Student{
		InternshipOfferStatus: OfferSelected,
		PPOOfferStatus:        OfferNone,
		FulltimeOfferStatus:   OfferRejected,
	}

	assert.Equal(t, OfferSelected, s.OfferStatusFor(JobTypeInternship))
	assert.Equal(t, OfferNone, s.OfferStatusFor(JobTypePPO))
	assert.Equal(t, OfferRejected, s.OfferStatusFor(JobTypeFullTime))
	assert.Equal(t, OfferNone, s.OfferStatusFor(JobType("unknown")))
}

func TestSetOfferStatusForTouchesOneFlag(t *testing.T) {
	s := &Student{
		InternshipOfferStatus: OfferNone,
		PPOOfferStatus:        OfferNone,
		FulltimeOfferStatus:   OfferNone,
	}

	s.SetOfferStatusFor(JobTypePPO, OfferSelected)

	assert.Equal(t, OfferNone, s.InternshipOfferStatus)
	assert.Equal(t, OfferSelected, s.PPOOfferStatus)
	assert.Equal(t, OfferNone, s.FulltimeOfferStatus)
}

func TestOfferStatusField(t *testing.T) {
	assert.Equal(t, "internship_offer_status", OfferStatusField(JobTypeInternship))
	assert.Equal(t, "ppo_offer_status", OfferStatusField(JobTypePPO))
	assert.Equal(t, "fulltime_offer_status", OfferStatusField(JobTypeFullTime))
	assert.Equal(t, "", OfferStatusField(JobType("unknown")))
}

func TestJobExpired(t *testing.T) {
	now := time.Now()

	active := &Job{JobStatus: JobActive, ApplicationDeadline: now.Add(time.Hour)}
	assert.False(t, active.Expired(now))
	assert.Equal(t, JobActive, active.DerivedStatus(now))

	pastDeadline := &Job{JobStatus: JobActive, ApplicationDeadline: now.Add(-time.Hour)}
	assert.True(t, pastDeadline.Expired(now))
	assert.Equal(t, JobExpired, pastDeadline.DerivedStatus(now))

	// A stored Expired status wins even before the deadline.
	marked := &Job{JobStatus: JobExpired, ApplicationDeadline: now.Add(time.Hour)}
	assert.True(t, marked.Expired(now))
}

func TestValidJobType(t *testing.T) {
	assert.True(t, ValidJobType(JobTypeInternship))
	assert.True(t, ValidJobType(JobTypePPO))
	assert.True(t, ValidJobType(JobTypeFullTime))
	assert.False(t, ValidJobType("Contract"))
	assert.False(t, ValidJobType(""))
}

func TestValidDecision(t *testing.T) {
	assert.True(t, ValidDecision(ApprovalSelected))
	assert.True(t, ValidDecision(ApprovalRejected))
	assert.False(t, ValidDecision(ApprovalPending))
	assert.False(t, ValidDecision("Ongoing"))
}

func TestValidResumeCategory(t *testing.T) {
	for _, c := range ResumeCategories {
		assert.True(t, ValidResumeCategory(c))
	}
	assert.False(t, ValidResumeCategory("Marketing"))
	assert.False(t, ValidResumeCategory(""))
}
