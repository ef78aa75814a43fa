package config

import (
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watch reloads the configuration whenever the file changes on disk.
// Each successful reload swaps the active instance and hands the old
// and new configs to onReload so the caller can remount listeners whose
// settings changed. Close the returned watcher to stop.
func Watch(onReload func(previous, current *Config)) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(configPath()); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		debounced := debounce.New(1 * time.Second)
		for {
			select {
			case _, ok := <-watcher.Events:
				if !ok {
					return
				}
				debounced(func() { onFileChanged(onReload) })
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logrus.Error("error in config watcher:", err)
			}
		}
	}()

	return watcher, nil
}

func onFileChanged(onReload func(previous, current *Config)) {
	logrus.Info("Config file change detected - reloading")

	previous := Get()
	current, err := Reload()
	if err != nil {
		logrus.Error("Error reloading configuration - keeping the old one")
		logrus.Error(err)
		return
	}

	if onReload != nil {
		onReload(previous, current)
	}
}
