package transcript

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"

	"likesdigest/pkg/model"
)

// whisper.cpp prints one segment per line:
// [00:00:00.000 --> 00:00:02.480]   some text
var whisperLineRe = regexp.MustCompile(`\[(\d+):(\d+):(\d+)\.(\d+)\s*-->\s*(\d+):(\d+):(\d+)\.(\d+)\]\s*(.*)`)

// Recognizer transcribes downloaded audio with a whisper.cpp container.
// It is the pipeline's speech-recognition capability: resolved once at
// startup via Available and carried explicitly from there.
type Recognizer struct {
	dockerClient *client.Client
	containerImg string
	modelName    string
	language     string
	ytDlpPath    string
	audioDir     string
}

func NewRecognizer(modelName, containerImg, language, ytDlpPath, audioDir string) *Recognizer {
	return &Recognizer{
		containerImg: containerImg,
		modelName:    modelName,
		language:     language,
		ytDlpPath:    ytDlpPath,
		audioDir:     audioDir,
	}
}

// Available probes the Docker daemon and the yt-dlp binary. A false
// result downgrades the whole speech-recognition path for the run.
func (r *Recognizer) Available() bool {
	if _, err := exec.LookPath(r.ytDlpPath); err != nil {
		return false
	}

	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false
	}
	defer cli.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = cli.Ping(ctx)
	return err == nil
}

func (r *Recognizer) init() error {
	if r.dockerClient != nil {
		return nil
	}
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("create docker client: %w", err)
	}
	r.dockerClient = cli
	return nil
}

// Recognize downloads the video's audio and transcribes it. The audio
// file is deleted afterwards whether or not recognition succeeded.
func (r *Recognizer) Recognize(ctx context.Context, videoID, videoURL string) (string, []model.Segment, error) {
	if err := r.init(); err != nil {
		return "", nil, err
	}

	audioPath, err := r.downloadAudio(ctx, videoID, videoURL)
	if err != nil {
		return "", nil, fmt.Errorf("download audio: %w", err)
	}
	defer os.Remove(audioPath)

	segments, err := r.transcribe(ctx, audioPath)
	if err != nil {
		return "", nil, err
	}
	return r.language, segments, nil
}

func (r *Recognizer) downloadAudio(ctx context.Context, videoID, videoURL string) (string, error) {
	outPath := filepath.Join(r.audioDir, videoID+".mp3")
	if _, err := os.Stat(outPath); err == nil {
		return outPath, nil
	}

	cmd := exec.CommandContext(ctx, r.ytDlpPath,
		"-f", "bestaudio/best",
		"-x", "--audio-format", "mp3",
		"--audio-quality", "192K",
		"-o", filepath.Join(r.audioDir, videoID+".%(ext)s"),
		"--quiet", "--no-warnings",
		videoURL,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("yt-dlp %s: %w (%s)", videoID, err, strings.TrimSpace(stderr.String()))
	}
	return outPath, nil
}

func (r *Recognizer) transcribe(ctx context.Context, audioPath string) ([]model.Segment, error) {
	absPath, err := filepath.Abs(audioPath)
	if err != nil {
		return nil, fmt.Errorf("get absolute path: %w", err)
	}

	containerName := fmt.Sprintf("whisper-%d", time.Now().UnixNano())
	containerConfig := &container.Config{
		Image: r.containerImg,
		Cmd: []string{
			"whisper-cli",
			"-m", "/models/" + r.modelName + ".bin",
			"-f", "/audio/" + filepath.Base(audioPath),
			"-l", r.language,
		},
		WorkingDir: "/audio",
	}
	hostConfig := &container.HostConfig{
		Binds:      []string{absPath + ":/audio/" + filepath.Base(audioPath)},
		AutoRemove: true,
		Resources: container.Resources{
			Memory: 2 * 1024 * 1024 * 1024,
		},
	}

	createResp, err := r.dockerClient.ContainerCreate(ctx, containerConfig, hostConfig, nil, nil, containerName)
	if err != nil {
		if isImageNotFound(err) {
			if err := r.pullImage(ctx); err != nil {
				return nil, fmt.Errorf("pull whisper image: %w", err)
			}
			createResp, err = r.dockerClient.ContainerCreate(ctx, containerConfig, hostConfig, nil, nil, containerName)
			if err != nil {
				return nil, fmt.Errorf("create container: %w", err)
			}
		} else {
			return nil, fmt.Errorf("create container: %w", err)
		}
	}

	if err := r.dockerClient.ContainerStart(ctx, createResp.ID, container.StartOptions{}); err != nil {
		return nil, fmt.Errorf("start container: %w", err)
	}

	statusCh, errCh := r.dockerClient.ContainerWait(ctx, createResp.ID, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		if err != nil {
			return nil, fmt.Errorf("container wait: %w", err)
		}
	case <-statusCh:
	}

	out, err := r.dockerClient.ContainerLogs(ctx, createResp.ID, container.LogsOptions{ShowStdout: true, ShowStderr: true})
	if err != nil {
		return nil, fmt.Errorf("get container logs: %w", err)
	}
	defer out.Close()

	var stdout, stderr bytes.Buffer
	if _, err := stdcopy.StdCopy(&stdout, &stderr, out); err != nil {
		return nil, fmt.Errorf("read container output: %w", err)
	}

	segments := parseWhisperOutput(stdout.String())
	if len(segments) == 0 {
		return nil, fmt.Errorf("whisper produced no transcription")
	}
	return segments, nil
}

func (r *Recognizer) pullImage(ctx context.Context) error {
	reader, err := r.dockerClient.ImagePull(ctx, r.containerImg, image.PullOptions{})
	if err != nil {
		return err
	}
	defer reader.Close()
	io.Copy(io.Discard, reader)
	return nil
}

func (r *Recognizer) Close() {
	if r.dockerClient != nil {
		r.dockerClient.Close()
	}
}

func parseWhisperOutput(stdout string) []model.Segment {
	var segments []model.Segment
	for _, line := range strings.Split(stdout, "\n") {
		match := whisperLineRe.FindStringSubmatch(strings.TrimSpace(line))
		if match == nil {
			continue
		}
		start := hmsToSeconds(match[1], match[2], match[3], match[4])
		end := hmsToSeconds(match[5], match[6], match[7], match[8])
		text := strings.TrimSpace(match[9])
		if text == "" {
			continue
		}
		segments = append(segments, model.Segment{Text: text, Start: start, Duration: end - start})
	}
	return segments
}

func hmsToSeconds(h, m, s, ms string) float64 {
	var hours, minutes, seconds, millis float64
	fmt.Sscanf(h, "%f", &hours)
	fmt.Sscanf(m, "%f", &minutes)
	fmt.Sscanf(s, "%f", &seconds)
	fmt.Sscanf(ms, "%f", &millis)
	return hours*3600 + minutes*60 + seconds + millis/1000
}

func isImageNotFound(err error) bool {
	return strings.Contains(err.Error(), "No such image") ||
		strings.Contains(err.Error(), "not found")
}
