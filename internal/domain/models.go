// internal/domain/models.go
package domain

import "encoding/json"

// HyperParameters represents the training hyperparameters of a DeepRacer model.
// Optional numeric fields are pointers so an explicit zero is written out
// while an unset field is left for the trainer's default.
type HyperParameters struct {
	BatchSize                  int      `json:"batch_size"`
	BetaEntropy                *float64 `json:"beta_entropy,omitempty"`
	DiscountFactor             *float64 `json:"discount_factor,omitempty"`
	EGreedyValue               *float64 `json:"e_greedy_value,omitempty"`
	EpsilonSteps               *int     `json:"epsilon_steps,omitempty"`
	ExplorationType            string   `json:"exploration_type,omitempty"`
	LossType                   string   `json:"loss_type,omitempty"`
	LR                         *float64 `json:"lr,omitempty"`
	NumEpisodesBetweenTraining *int     `json:"num_episodes_between_training,omitempty"`
	NumEpochs                  *int     `json:"num_epochs,omitempty"`
	StackSize                  *int     `json:"stack_size,omitempty"`
	TermCondAvgScore           *float64 `json:"term_cond_avg_score,omitempty"`
	TermCondMaxEpisodes        *int     `json:"term_cond_max_episodes,omitempty"`
	SACAlpha                   *float64 `json:"sac_alpha,omitempty"`
}

// ModelMetadata represents the model_metadata.json of a DeepRacer model
type ModelMetadata struct {
	// ActionSpace is either a discrete list of actions or a continuous range,
	// so it is passed through as raw JSON.
	ActionSpace       json.RawMessage `json:"action_space,omitempty"`
	Sensor            []string        `json:"sensor,omitempty"`
	NeuralNetwork     string          `json:"neural_network,omitempty"`
	TrainingAlgorithm string          `json:"training_algorithm,omitempty"`
	ActionSpaceType   string          `json:"action_space_type,omitempty"`
	Version           string          `json:"version,omitempty"`
}

// DiscreteAction is a single entry of a discrete action space
type DiscreteAction struct {
	SteeringAngle float64 `json:"steering_angle"`
	Speed         float64 `json:"speed"`
}

// ContinuousActionSpace is the action space of a continuous model
type ContinuousActionSpace struct {
	SteeringAngle Range `json:"steering_angle"`
	Speed         Range `json:"speed"`
}

// Range is a closed numeric interval
type Range struct {
	High float64 `json:"high"`
	Low  float64 `json:"low"`
}
