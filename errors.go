package kafunk

import (
	"errors"
	"fmt"
)

// ErrClosedClient names the error of using a consumer that has already been
// closed. No Consumer method returns it: Consume and ConsumeCommitAfter on a
// closed Consumer return nil once the generation sequence has ended.
var ErrClosedClient = errors.New("kafunk: tried to use a consumer that was closed")

// ErrEmptyAssignment is the fatal error surfaced when a generation resolves
// to zero assigned partitions for this member, per the "a generation with
// zero assigned partitions is an error condition" invariant.
var ErrEmptyAssignment = errors.New("kafunk: generation assignment contains zero partitions")

// ErrMalformedResponse is returned when a broker response omits fields the
// protocol requires (e.g. an OffsetCommit response with no topics array, or
// a Fetch response with no topics list).
var ErrMalformedResponse = errors.New("kafunk: broker response missing required fields")

// ConfigurationError is returned from NewConsumer when the supplied
// ConsumerConfig is invalid.
type ConfigurationError string

func (err ConfigurationError) Error() string {
	return "kafunk: invalid configuration (" + string(err) + ")"
}

// KError is the error type carried directly in Kafka broker responses. Only
// the codes this client needs to classify are named; any other value
// decodes fine and takes the default branch of each classify* function
// (rejoin for group and commit errors, close-partition for fetch errors).
type KError int16

const (
	ErrNoError                  KError = 0
	ErrUnknown                  KError = -1
	ErrOffsetOutOfRange         KError = 1
	ErrUnknownTopicOrPartition  KError = 3
	ErrLeaderNotAvailable       KError = 5
	ErrNotLeaderForPartition    KError = 6
	ErrRequestTimedOut          KError = 7
	ErrOffsetsLoadInProgress    KError = 14
	ErrNotCoordinatorForConsumer KError = 16
	ErrIllegalGeneration        KError = 22
	ErrInconsistentGroupProtocol KError = 23
	ErrUnknownMemberId          KError = 25
	ErrInvalidSessionTimeout    KError = 26
	ErrRebalanceInProgress      KError = 27
	ErrGroupAuthorizationFailed KError = 30
)

func (err KError) Error() string {
	switch err {
	case ErrNoError:
		return "kafka server: not an error"
	case ErrUnknown:
		return "kafka server: unexpected (unknown?) server error"
	case ErrOffsetOutOfRange:
		return "kafka server: the requested offset is outside the range maintained by the server"
	case ErrUnknownTopicOrPartition:
		return "kafka server: request was for a topic or partition that does not exist on this broker"
	case ErrLeaderNotAvailable:
		return "kafka server: there is currently no leader for this partition"
	case ErrNotLeaderForPartition:
		return "kafka server: tried to talk to a replica that is not the leader for this partition"
	case ErrRequestTimedOut:
		return "kafka server: request exceeded the user-specified time limit"
	case ErrOffsetsLoadInProgress:
		return "kafka server: the broker is still loading offsets for this group"
	case ErrNotCoordinatorForConsumer:
		return "kafka server: request was for a group not coordinated by this broker"
	case ErrIllegalGeneration:
		return "kafka server: the provided generation id is not the current generation"
	case ErrInconsistentGroupProtocol:
		return "kafka server: the provided group protocol is incompatible with the other members"
	case ErrUnknownMemberId:
		return "kafka server: the provided member id is not known in the current generation"
	case ErrInvalidSessionTimeout:
		return "kafka server: the provided session timeout is outside the allowed range"
	case ErrRebalanceInProgress:
		return "kafka server: a rebalance for the group is in progress, please re-join"
	case ErrGroupAuthorizationFailed:
		return "kafka server: the client is not authorized to access this group"
	}
	return fmt.Sprintf("kafka server: unknown error code %d", int16(err))
}

// classification is the outcome of running the Error Classifier (C1) over a
// broker error code or transport failure.
type classification int

const (
	// classOK means proceed; no error occurred.
	classOK classification = iota
	// classRejoin closes the current generation and rejoins with the
	// current member id.
	classRejoin
	// classResetMember closes the current generation, sleeps one session
	// timeout, and rejoins with an empty member id.
	classResetMember
	// classRetryFetch means the caller should recover the offset via a
	// time-based lookup and reissue the fetch; it does not close the
	// generation.
	classRetryFetch
	// classClosePartition closes the current generation (used for
	// per-partition errors that call for fresh metadata on rejoin).
	classClosePartition
	// classFatal is unrecoverable and must be surfaced to the caller.
	classFatal
)

// classifyGroupError maps a KError returned by JoinGroup, SyncGroup, or
// Heartbeat to a classification. This is the group-protocol half of C1.
func classifyGroupError(err KError) classification {
	switch err {
	case ErrNoError:
		return classOK
	case ErrUnknownMemberId:
		return classResetMember
	case ErrIllegalGeneration, ErrRebalanceInProgress:
		return classRejoin
	default:
		return classRejoin
	}
}

// classifyFetchError maps a KError returned on a Fetch partition response to
// a classification, per spec.md §4.1.
func classifyFetchError(err KError) classification {
	switch err {
	case ErrNoError:
		return classOK
	case ErrOffsetOutOfRange:
		return classRetryFetch
	case ErrUnknownTopicOrPartition, ErrNotLeaderForPartition:
		return classClosePartition
	default:
		return classClosePartition
	}
}

// classifyCommitError maps a KError returned on an OffsetCommit partition
// response to a classification.
func classifyCommitError(err KError) classification {
	switch err {
	case ErrNoError:
		return classOK
	case ErrIllegalGeneration, ErrRebalanceInProgress, ErrUnknownMemberId:
		return classRejoin
	default:
		return classRejoin
	}
}
