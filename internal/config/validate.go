package config

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDataset(); err != nil {
		return err
	}
	if err := c.validateControls(); err != nil {
		return err
	}
	if err := c.validateLabels(); err != nil {
		return err
	}
	if err := c.validateTiming(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDataset() error {
	if c.Dataset.UnmarkedPath == "" {
		return errors.New("dataset.unmarked_path must be set")
	}
	if c.Dataset.MarkedPath == "" {
		return errors.New("dataset.marked_path must be set")
	}
	if c.Dataset.IDColumn == "" {
		return errors.New("dataset.id_column must be set")
	}
	if c.Dataset.TextColumn == "" {
		return errors.New("dataset.text_column must be set")
	}
	if c.Dataset.LabelColumn == "" {
		return errors.New("dataset.label_column must be set")
	}
	return nil
}

func (c *Config) validateControls() error {
	if c.Controls.Skip == c.Controls.Back {
		return errors.New("controls.skip and controls.back must differ")
	}
	if c.Controls.Skip == c.Controls.More {
		return errors.New("controls.skip and controls.more must differ")
	}
	if c.Controls.Back == c.Controls.More {
		return errors.New("controls.back and controls.more must differ")
	}
	return nil
}

func (c *Config) validateLabels() error {
	if len(c.Labels) == 0 {
		return errors.New("labels must define at least one keystroke")
	}
	for keystroke := range c.Labels {
		if utf8.RuneCountInString(keystroke) != 1 {
			return fmt.Errorf("labels: keystroke %q must be a single character", keystroke)
		}
		if name, collides := c.controlName(keystroke); collides {
			return fmt.Errorf("labels: keystroke %q already bound to the %s control; change one of them", keystroke, name)
		}
	}
	return nil
}

func (c *Config) controlName(keystroke string) (string, bool) {
	switch keystroke {
	case c.Controls.Skip:
		return "skip", true
	case c.Controls.Back:
		return "back", true
	case c.Controls.More:
		return "more", true
	}
	return "", false
}

func (c *Config) validateTiming() error {
	if c.Timing.SessionMinutes < 0 {
		return errors.New("timing.session_minutes must be positive")
	}
	if c.Timing.BreakMinutes < 0 {
		return errors.New("timing.break_minutes must be positive")
	}
	if c.Timing.SessionMinutes > 0 && c.Timing.BreakMinutes == 0 {
		return errors.New("timing.session_minutes is set but timing.break_minutes is not")
	}
	if c.Timing.BreakMinutes > 0 && c.Timing.SessionMinutes == 0 {
		return errors.New("timing.break_minutes is set but timing.session_minutes is not")
	}
	return nil
}
